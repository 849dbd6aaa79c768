package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/utils"
)

func ValidateCardNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("card number is required")
	}
	digits := utils.DigitsOnly(s)
	if len(digits) != constants.CardDigits || len(digits) != len(strings.ReplaceAll(s, " ", "")) {
		return fmt.Errorf("please enter a valid %d-digit card number", constants.CardDigits)
	}
	return nil
}

// ValidateExpiry accepts MM/YY with a month between 01 and 12.
func ValidateExpiry(s string) error {
	formatted := utils.FormatExpiryDate(s)
	if len(formatted) != 5 {
		return fmt.Errorf("expiry date must be MM/YY")
	}
	month, _ := strconv.Atoi(formatted[:2])
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid expiry month %02d", month)
	}
	return nil
}

func ValidateCVV(s string) error {
	if len(s) != constants.CVVDigits || utils.DigitsOnly(s) != s {
		return fmt.Errorf("please enter a valid %d-digit CVV", constants.CVVDigits)
	}
	return nil
}

func ValidateCardholder(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cardholder name is required")
	}
	if len(s) > constants.MaxNameLen {
		return fmt.Errorf("cardholder name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}
