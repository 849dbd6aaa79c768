package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/ui"
	"github.com/koso-app/koso/internal/validation"
)

func PromptEmail(defaultEmail string) (string, error) {
	return PromptInput("Email address", defaultEmail, validation.ValidateEmail)
}

func PromptPassword() (string, error) {
	return ui.AskPassword("Password:", validation.ValidatePassword)
}

// PromptSignup collects the registration form. The terms must be accepted
// for the form to complete.
func PromptSignup(defaultEmail string) (service.SignupInput, error) {
	in := service.SignupInput{Email: defaultEmail}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&in.FirstName).
				Validate(func(s string) error { return validation.ValidatePersonName("first name", s) }),
			huh.NewInput().
				Title("Last name").
				Value(&in.LastName).
				Validate(func(s string) error { return validation.ValidatePersonName("last name", s) }),
			huh.NewInput().
				Title("Email address").
				Value(&in.Email).
				Validate(validation.ValidateEmail),
		),
	).Run()
	if err != nil {
		return service.SignupInput{}, err
	}

	in.Password, err = ui.AskPassword("Create password:", func(s string) error {
		return validation.ValidateNewPassword(s, s)
	})
	if err != nil {
		return service.SignupInput{}, err
	}
	in.Confirm, err = ui.AskPassword("Confirm password:", func(s string) error {
		return validation.ValidateNewPassword(in.Password, s)
	})
	if err != nil {
		return service.SignupInput{}, err
	}

	err = huh.NewConfirm().
		Title("I agree to the Terms of Service and Privacy Policy").
		Affirmative("I agree").
		Negative("Cancel").
		Value(&in.AcceptTerms).
		Validate(validation.ValidateTermsAccepted).
		Run()
	if err != nil {
		return service.SignupInput{}, err
	}
	return in, nil
}
