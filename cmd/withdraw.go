package cmd

import (
	"fmt"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type withdrawRunner struct {
	app    *app.App
	amount string
	cmd    *cobra.Command
}

func NewWithdrawCmd(a *app.App) *cobra.Command {
	runner := &withdrawRunner{app: a}

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw money from your savings",
		Long: `Withdraw money from your savings balance. A processing fee is
	added to every withdrawal and shown before you confirm.

	Examples:
	koso withdraw
	koso withdraw --amount 2000 --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.amount, "amount", "a", "", "Amount to withdraw")

	return cmd
}

func (r *withdrawRunner) Run() error {
	ls := r.app.Service.Ledger
	symbol := r.app.Symbol()
	fee := ls.Policy().WithdrawalFee

	balance, err := ls.Balance(r.app.Account.ID)
	if err != nil {
		return err
	}
	pterm.Info.Printf("Available balance: %s\n", utils.FormatAmount(balance, symbol))

	var amount int64
	if r.cmd.Flags().Changed("amount") {
		amount, err = utils.ParseAmount(r.amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	} else {
		validator := validation.AmountValidator{WithdrawalFee: fee, Symbol: symbol}
		amount, err = prompts.PromptAmount("How much do you want to withdraw?", symbol, nil,
			validator.ValidateWithdrawal(balance))
		if err != nil {
			return err
		}
	}

	if err := views.RenderWithdrawalSummary(amount, fee, balance, symbol); err != nil {
		return err
	}

	if !r.app.AssumeYes {
		confirm, err := prompts.PromptConfirm("Confirm withdrawal?", true)
		if err != nil {
			return err
		}
		if !confirm {
			pterm.Warning.Println("Withdrawal cancelled")
			return nil
		}
	}

	res, err := ls.Withdraw(r.app.Account.ID, amount)
	if err != nil {
		return err
	}
	views.RenderResult(res, symbol)
	return nil
}
