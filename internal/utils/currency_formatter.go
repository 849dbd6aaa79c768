package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/koso-app/koso/internal/constants"
)

var ErrEmptyAmount = errors.New("amount is required")

// FormatAmount renders whole currency units with thousands grouping,
// e.g. FormatAmount(45750, "₦") == "₦45,750".
func FormatAmount(amount int64, symbol string) string {
	if amount < 0 {
		return "-" + symbol + humanize.Comma(-amount)
	}
	return symbol + humanize.Comma(amount)
}

// ParseAmount reads a whole-unit amount typed by a user. Grouping commas,
// spaces and a leading currency symbol are ignored: "₦5,000" -> 5000.
func ParseAmount(amountStr string) (int64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(amountStr) {
		if r == ',' || r == '_' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.TrimLeftFunc(b.String(), func(r rune) bool {
		return unicode.Is(unicode.Sc, r)
	})

	if cleaned == "" {
		return 0, ErrEmptyAmount
	}
	if strings.Contains(cleaned, ".") {
		return 0, fmt.Errorf("invalid amount %q: use whole units only", amountStr)
	}

	digits := strings.TrimPrefix(cleaned, "-")
	if digits == "" || len(digits) > constants.MaxAmountLen {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount: %s", amountStr)
		}
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	return amount, nil
}
