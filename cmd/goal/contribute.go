package goal

import (
	"fmt"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/koso-app/koso/internal/utils"
	"github.com/koso-app/koso/internal/validation"
	"github.com/spf13/cobra"
)

type contributeFlags struct {
	GoalID int64
	Amount string
}

type contributeRunner struct {
	app   *app.App
	flags *contributeFlags
	cmd   *cobra.Command
}

func NewContributeCmd(a *app.App) *cobra.Command {
	flags := &contributeFlags{}

	cmd := &cobra.Command{
		Use:   "contribute",
		Short: "Move money from your balance into a goal",
		Long: `Move money from your balance into a savings goal. No fee applies.

	Examples:
	koso goal contribute
	koso goal contribute --goal 1 --amount 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &contributeRunner{app: a, flags: flags, cmd: cmd}
			return runner.Run()
		},
	}
	cmd.Flags().Int64VarP(&flags.GoalID, "goal", "g", 0, "Goal ID (see 'koso goal list')")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount to contribute")

	return cmd
}

func (r *contributeRunner) Run() error {
	ls := r.app.Service.Ledger
	accountID := r.app.Account.ID
	symbol := r.app.Symbol()

	goalID := r.flags.GoalID
	if !r.cmd.Flags().Changed("goal") {
		goals, err := ls.Goals(accountID)
		if err != nil {
			return err
		}
		goalID, err = prompts.PromptGoal(goals, symbol)
		if err != nil {
			return err
		}
	}

	var amount int64
	var err error
	if r.cmd.Flags().Changed("amount") {
		amount, err = utils.ParseAmount(r.flags.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	} else {
		balance, err := ls.Balance(accountID)
		if err != nil {
			return err
		}
		validator := validation.AmountValidator{Symbol: symbol}
		amount, err = prompts.PromptAmount("How much do you want to add to this goal?", symbol,
			constants.ContributionQuickAmounts, validator.ValidateContribution(balance))
		if err != nil {
			return err
		}
	}

	res, err := ls.Contribute(accountID, goalID, amount)
	if err != nil {
		return err
	}
	views.RenderResult(res, symbol)
	return nil
}
