package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption returns a survey option that sets the question icon to "-"
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// AskPassword reads a secret without echoing it.
func AskPassword(message string, validate func(string) error) (string, error) {
	var password string
	prompt := &survey.Password{Message: message}

	opts := []survey.AskOpt{IconOption()}
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}

	err := survey.AskOne(prompt, &password, opts...)
	return password, err
}
