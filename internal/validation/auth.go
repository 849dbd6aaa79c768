package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/koso-app/koso/internal/constants"
)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateNewPassword applies the sign-up rules.
func ValidateNewPassword(password, confirm string) error {
	if len(password) < constants.MinPassword {
		return fmt.Errorf("password must be at least %d characters", constants.MinPassword)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// ValidatePersonName checks a first or last name; field names the input in
// the error message.
func ValidatePersonName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("%s is too long (max %d characters)", field, constants.MaxNameLen)
	}
	return nil
}

func ValidateTermsAccepted(accepted bool) error {
	if !accepted {
		return fmt.Errorf("please agree to the terms and conditions")
	}
	return nil
}
