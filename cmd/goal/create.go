package goal

import (
	"fmt"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type createFlags struct {
	Name      string
	Target    string
	Frequency string
}

type createRunner struct {
	app   *app.App
	flags *createFlags
	cmd   *cobra.Command
}

func NewCreateCmd(a *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new savings goal",
		Long: `Create a new savings goal.

	Examples:
	koso goal create
	koso goal create --name "Car" --target 2,000,000 --frequency Yearly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &createRunner{app: a, flags: flags, cmd: cmd}
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Goal name")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "Target amount")
	cmd.Flags().StringVarP(&flags.Frequency, "frequency", "f", "Monthly", "Saving frequency")

	return cmd
}

func (r *createRunner) Run() error {
	var input prompts.GoalInput
	var err error

	if r.cmd.Flags().Changed("name") || r.cmd.Flags().Changed("target") {
		if r.flags.Name == "" || r.flags.Target == "" {
			return fmt.Errorf("when using flags, --name and --target are both required")
		}
		target, err := utils.ParseAmount(r.flags.Target)
		if err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}
		input = prompts.GoalInput{Name: r.flags.Name, Target: target, Frequency: r.flags.Frequency}
	} else {
		input, err = prompts.PromptNewGoal(r.app.Symbol(), constants.Frequencies)
		if err != nil {
			return err
		}
	}

	g, err := r.app.Service.Ledger.CreateGoal(r.app.Account.ID, input.Name, input.Target, input.Frequency)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Goal '%s' created with a target of %s (ID: %d)\n",
		g.Name, utils.FormatAmount(g.Target, r.app.Symbol()), g.ID)
	return nil
}
