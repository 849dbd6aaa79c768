package goal

import (
	"github.com/koso-app/koso/internal/app"
	"github.com/spf13/cobra"
)

func NewGoalCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
		Long:  `List savings goals, create new ones and move money from your balance into a goal.`,
	}

	cmd.AddCommand(NewListCmd(a))
	cmd.AddCommand(NewCreateCmd(a))
	cmd.AddCommand(NewContributeCmd(a))

	return cmd
}
