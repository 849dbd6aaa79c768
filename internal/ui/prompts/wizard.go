package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// SetupChoice is the outcome of the first-run wizard.
type SetupChoice struct {
	Currency string
	Symbol   string
	SeedDemo bool
}

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"GHS": "₵",
	"KES": "KSh",
}

func PromptInitSetup(currDefault string) (SetupChoice, error) {
	selection := currDefault
	seed := true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to Koso! Please choose the currency of your savings account:").
				Options(
					huh.NewOption("NGN (₦)", "NGN"),
					huh.NewOption("USD ($)", "USD"),
					huh.NewOption("GBP (£)", "GBP"),
					huh.NewOption("EUR (€)", "EUR"),
					huh.NewOption("GHS (₵)", "GHS"),
					huh.NewOption("KES (KSh)", "KES"),
					huh.NewOption("Other", "Other"),
				).
				Value(&selection),
			huh.NewConfirm().
				Title("Start with the demo dashboard?").
				Description("Opens the account with a sample balance and three savings goals.").
				Affirmative("Yes").
				Negative("No, start empty").
				Value(&seed),
		),
	).Run()
	if err != nil {
		return SetupChoice{}, err
	}

	choice := SetupChoice{Currency: selection, Symbol: currencySymbols[selection], SeedDemo: seed}
	if selection == "Other" {
		code, err := PromptInput("Please enter the ISO 4217 currency code:", "", validateCurrencyCode)
		if err != nil {
			return SetupChoice{}, err
		}
		choice.Currency = strings.ToUpper(code)
		choice.Symbol = choice.Currency + " "
	}

	return choice, nil
}

func validateCurrencyCode(s string) error {
	if len(strings.TrimSpace(s)) != 3 {
		return errors.New("currency code must have 3 letters")
	}
	return nil
}
