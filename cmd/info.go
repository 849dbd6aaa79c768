package cmd

import (
	"os"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and ledger rules.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{app: a}
			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	c := r.app.Service.Config

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath := c.Database.Path
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	policy := c.Policy()
	items := views.SystemInfoItem{
		ConfigPath:     configPath,
		DBPath:         dbPath,
		DBExists:       dbExists,
		Account:        c.Defaults.Account,
		Currency:       c.Defaults.Currency,
		Symbol:         c.Defaults.Symbol,
		WithdrawalFee:  policy.WithdrawalFee,
		MinimumDeposit: policy.MinimumDeposit,
		AuthURL:        c.Auth.BaseURL,
		LogLevel:       c.Log.Level,
	}

	return views.RenderSystemInfo(items)
}
