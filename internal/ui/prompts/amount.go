package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/koso-app/koso/internal/utils"
)

const customAmount int64 = -1

// PromptAmount offers the quick amounts plus a custom entry and returns the
// chosen amount. validate is applied to both paths.
func PromptAmount(title, symbol string, quick []int64, validate func(string) error) (int64, error) {
	choice := customAmount

	opts := make([]huh.Option[int64], 0, len(quick)+1)
	for _, q := range quick {
		opts = append(opts, huh.NewOption(utils.FormatAmount(q, symbol), q))
	}
	opts = append(opts, huh.NewOption("Enter another amount", customAmount))

	if len(quick) > 0 {
		err := huh.NewSelect[int64]().
			Title(title).
			Options(opts...).
			Value(&choice).
			Validate(func(v int64) error {
				if v == customAmount || validate == nil {
					return nil
				}
				return validate(utils.FormatAmount(v, ""))
			}).
			Run()
		if err != nil {
			return 0, err
		}
		if choice != customAmount {
			return choice, nil
		}
	}

	var raw string
	err := huh.NewInput().
		Title(title).
		Description("Whole amounts only, e.g. 5,000").
		Prompt(symbol + " ").
		Value(&raw).
		Validate(func(s string) error {
			if validate != nil {
				return validate(s)
			}
			_, err := utils.ParseAmount(s)
			return err
		}).
		Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseAmount(raw)
}
