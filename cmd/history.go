package cmd

import (
	"fmt"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/ui/views"
	"github.com/spf13/cobra"
)

type historyRunner struct {
	app   *app.App
	limit int
	all   bool
}

func NewHistoryCmd(a *app.App) *cobra.Command {
	runner := &historyRunner{app: a}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"tx"},
		Short:   "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run()
		},
	}
	cmd.Flags().IntVarP(&runner.limit, "limit", "n", 0, "Number of transactions to show (default: history window)")
	cmd.Flags().BoolVar(&runner.all, "all", false, "Show the full history")

	return cmd
}

func (r *historyRunner) Run() error {
	if r.limit < 0 {
		return fmt.Errorf("limit can't be negative")
	}

	var txs []ledger.Transaction
	var err error
	title := "Transaction history"
	if r.all {
		txs, err = r.app.Service.Ledger.History(r.app.Account.ID)
	} else {
		txs, err = r.app.Service.Ledger.Recent(r.app.Account.ID, r.limit)
		title = fmt.Sprintf("Recent transactions (limit: %d)", r.effectiveLimit())
	}
	if err != nil {
		return err
	}

	return views.NewTransactionListView(r.app.Symbol()).Render(title, txs)
}

func (r *historyRunner) effectiveLimit() int {
	if r.limit > 0 {
		return r.limit
	}
	return r.app.Service.Ledger.Policy().HistoryWindow
}
