package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
)

func PromptCard() (service.CardInput, error) {
	var in service.CardInput

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Card number").
				Placeholder("0000 0000 0000 0000").
				CharLimit(19).
				Value(&in.Number).
				Validate(validation.ValidateCardNumber),
			huh.NewInput().
				Title("Expiry date").
				Placeholder("MM/YY").
				CharLimit(5).
				Value(&in.Expiry).
				Validate(validation.ValidateExpiry),
			huh.NewInput().
				Title("CVV").
				CharLimit(3).
				EchoMode(huh.EchoModePassword).
				Value(&in.CVV).
				Validate(validation.ValidateCVV),
			huh.NewInput().
				Title("Cardholder name").
				Value(&in.Holder).
				Validate(validation.ValidateCardholder),
		),
	)
	if err := form.Run(); err != nil {
		return service.CardInput{}, err
	}

	in.Number = utils.FormatCardNumber(in.Number)
	in.Expiry = utils.FormatExpiryDate(in.Expiry)
	return in, nil
}
