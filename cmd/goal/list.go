package goal

import (
	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/spf13/cobra"
)

type listRunner struct {
	app *app.App
}

func NewListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List savings goals with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{app: a}
			return runner.Run()
		},
	}
}

func (r *listRunner) Run() error {
	goals, err := r.app.Service.Ledger.Goals(r.app.Account.ID)
	if err != nil {
		return err
	}
	return views.RenderGoals(goals, r.app.Symbol())
}
