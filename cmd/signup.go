package cmd

import (
	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type signupRunner struct {
	app   *app.App
	email string
	cmd   *cobra.Command
}

func NewSignupCmd(a *app.App) *cobra.Command {
	runner := &signupRunner{app: a}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a koso account",
		Long: `Register with the koso account service. You will be asked for your
	name, email address and a password of at least 6 characters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.email, "email", "e", "", "Account email address")

	return cmd
}

func (r *signupRunner) Run() error {
	in, err := prompts.PromptSignup(r.email)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Creating account...")
	msg, err := r.app.Service.Auth.Signup(r.cmd.Context(), in)
	if err != nil {
		spinner.Fail(describeAuthError(err))
		return err
	}
	if msg == "" {
		msg = "Account created successfully"
	}
	spinner.Success(msg)
	return nil
}
