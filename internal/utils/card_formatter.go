package utils

import (
	"strings"

	"github.com/koso-app/koso/internal/constants"
)

// DigitsOnly drops every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber groups the digits of a card number in fours, keeping at
// most 16 digits: "4000123412341234" -> "4000 1234 1234 1234".
func FormatCardNumber(text string) string {
	digits := DigitsOnly(text)
	if len(digits) > constants.CardDigits {
		digits = digits[:constants.CardDigits]
	}

	groups := make([]string, 0, 4)
	for len(digits) > 4 {
		groups = append(groups, digits[:4])
		digits = digits[4:]
	}
	if digits != "" {
		groups = append(groups, digits)
	}
	return strings.Join(groups, " ")
}

// FormatExpiryDate masks typed digits as MM/YY: "1226" -> "12/26", "1" -> "1".
func FormatExpiryDate(text string) string {
	digits := DigitsOnly(text)
	if len(digits) < 2 {
		return digits
	}
	end := len(digits)
	if end > 4 {
		end = 4
	}
	return digits[:2] + "/" + digits[2:end]
}

func LastFour(cardNumber string) string {
	digits := DigitsOnly(cardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func MaskCard(lastFour string) string {
	return "•••• •••• •••• " + lastFour
}
