package cmd

import (
	"fmt"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
	"github.com/spf13/cobra"
)

type depositFlags struct {
	Amount string
	Method string
}

type depositRunner struct {
	app   *app.App
	flags *depositFlags
	cmd   *cobra.Command
}

func NewDepositCmd(a *app.App) *cobra.Command {
	flags := &depositFlags{}

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Add money to your savings",
		Long: `Add money to your savings balance.

	Examples:
	# Interactive mode
	koso deposit

	# Quick mode with flags
	koso deposit --amount 5000 --method bank`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &depositRunner{app: a, flags: flags, cmd: cmd}
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount to deposit (e.g. 5000 or 5,000)")
	cmd.Flags().StringVarP(&flags.Method, "method", "m", "", "Payment method: bank, card or ussd")

	return cmd
}

func (r *depositRunner) Run() error {
	policy := r.app.Service.Ledger.Policy()
	validator := validation.AmountValidator{
		MinimumDeposit: policy.MinimumDeposit,
		Symbol:         r.app.Symbol(),
	}

	var amount int64
	var err error
	if r.cmd.Flags().Changed("amount") {
		amount, err = utils.ParseAmount(r.flags.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	} else {
		amount, err = prompts.PromptAmount("How much do you want to add?", r.app.Symbol(),
			constants.DepositQuickAmounts, validator.ValidateDeposit)
		if err != nil {
			return err
		}
	}

	var method ledger.Method
	if r.cmd.Flags().Changed("method") {
		method, err = ledger.ParseMethod(r.flags.Method)
	} else {
		method, err = prompts.PromptMethod()
	}
	if err != nil {
		return err
	}

	res, err := r.app.Service.Ledger.Deposit(r.app.Account.ID, amount, method)
	if err != nil {
		return err
	}
	views.RenderResult(res, r.app.Symbol())
	return nil
}
