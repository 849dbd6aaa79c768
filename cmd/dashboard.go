package cmd

import (
	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/spf13/cobra"
)

type dashboardRunner struct {
	app *app.App
}

func NewDashboardCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"home"},
		Short:   "Show balance, savings goals and recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &dashboardRunner{app: a}
			return runner.Run()
		},
	}
}

func (r *dashboardRunner) Run() error {
	d, err := r.app.Service.Ledger.Dashboard(r.app.Account.ID)
	if err != nil {
		return err
	}
	return views.RenderDashboard(d, r.app.Symbol())
}
