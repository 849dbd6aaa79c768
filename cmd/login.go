package cmd

import (
	"errors"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/auth"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type loginRunner struct {
	app   *app.App
	email string
	cmd   *cobra.Command
}

func NewLoginCmd(a *app.App) *cobra.Command {
	runner := &loginRunner{app: a}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your koso account",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.email, "email", "e", "", "Account email address")

	return cmd
}

func (r *loginRunner) Run() error {
	email, err := prompts.PromptEmail(r.email)
	if err != nil {
		return err
	}
	password, err := prompts.PromptPassword()
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Signing in...")
	msg, err := r.app.Service.Auth.Login(r.cmd.Context(), email, password)
	if err != nil {
		spinner.Fail(describeAuthError(err))
		return err
	}
	if msg == "" {
		msg = "Login successful"
	}
	spinner.Success(msg)
	return nil
}

type forgotPasswordRunner struct {
	app   *app.App
	email string
	cmd   *cobra.Command
}

func NewForgotPasswordCmd(a *app.App) *cobra.Command {
	runner := &forgotPasswordRunner{app: a}

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.email, "email", "e", "", "Account email address")

	return cmd
}

func (r *forgotPasswordRunner) Run() error {
	email, err := prompts.PromptEmail(r.email)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Sending reset link...")
	msg, err := r.app.Service.Auth.ForgotPassword(r.cmd.Context(), email)
	if err != nil {
		spinner.Fail(describeAuthError(err))
		return err
	}
	if msg == "" {
		msg = "If the address is registered, a reset link is on its way"
	}
	spinner.Success(msg)
	return nil
}

func describeAuthError(err error) string {
	var apiErr *auth.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, auth.ErrNetwork):
		return "Network error. Please check your connection."
	default:
		return err.Error()
	}
}
