package views

import (
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/ui"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

// WithdrawalSummary lists what a withdrawal will take from the balance.
func WithdrawalSummary(amount, fee, balance int64, symbol string) pterm.TableData {
	total := amount + fee
	return pterm.TableData{
		{"Amount", utils.FormatAmount(amount, symbol)},
		{"Processing fee", utils.FormatAmount(fee, symbol)},
		{"Total deduction", utils.FormatAmount(total, symbol)},
		{"Balance after", utils.FormatAmount(balance-total, symbol)},
	}
}

func RenderWithdrawalSummary(amount, fee, balance int64, symbol string) error {
	pterm.DefaultSection.Println("Withdrawal summary")
	return pterm.DefaultTable.WithData(WithdrawalSummary(amount, fee, balance, symbol)).Render()
}

// RenderResult confirms a committed operation.
func RenderResult(res ledger.Result, symbol string) {
	tx := res.Transaction
	pterm.Success.Printf("%s %s\n", tx.Description, ui.SignedMoney(tx.Effect(), symbol))
	if res.Goal != nil {
		pterm.Info.Printf("%s: %s of %s (%s)\n", res.Goal.Name,
			utils.FormatAmount(res.Goal.Current, symbol),
			utils.FormatAmount(res.Goal.Target, symbol),
			ProgressBar(res.Goal.Progress()))
	}
	pterm.Info.Printf("New balance: %s\n", ui.Money(res.Balance, symbol))
}
