package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
)

func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptInput asks for one line of text. An empty answer falls back to
// defaultValue, which is shown as the placeholder.
func PromptInput(message, defaultValue string, validator func(string) error) (string, error) {
	var value string

	input := huh.NewInput().
		Title(message).
		Value(&value)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(func(s string) error {
			if s == "" && defaultValue != "" {
				return nil
			}
			return validator(s)
		})
	}

	if err := input.Run(); err != nil {
		return "", err
	}

	if strings.TrimSpace(value) == "" && defaultValue != "" {
		return defaultValue, nil
	}
	return strings.TrimSpace(value), nil
}
