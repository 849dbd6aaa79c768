package views

import (
	"fmt"

	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	Symbol string
}

func NewTransactionListView(symbol string) *TransactionListView {
	return &TransactionListView{Symbol: symbol}
}

// KindLabel is the short label of a transaction kind.
func KindLabel(k ledger.Kind) string {
	switch k {
	case ledger.KindDeposit:
		return "Deposit"
	case ledger.KindWithdrawal:
		return "Withdrawal"
	case ledger.KindGoalContribution:
		return "Goal"
	default:
		return string(k)
	}
}

// Rows builds the table body, newest first as given.
func (v *TransactionListView) Rows(txs []ledger.Transaction) pterm.TableData {
	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Description", "Amount", "Fee"},
	}
	for _, tx := range txs {
		effect := tx.Effect()
		amount := utils.FormatAmount(tx.Amount, v.Symbol)
		var coloredType, coloredAmount string
		if effect >= 0 {
			coloredType = pterm.Green(KindLabel(tx.Kind))
			coloredAmount = pterm.Green("+" + amount)
		} else {
			coloredType = pterm.Red(KindLabel(tx.Kind))
			coloredAmount = pterm.Red("-" + amount)
		}
		fee := "-"
		if tx.Fee > 0 {
			fee = utils.FormatAmount(tx.Fee, v.Symbol)
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", tx.ID),
			tx.CreatedAt.Local().Format(constants.DateTimeFormat),
			coloredType,
			tx.Description,
			coloredAmount,
			fee,
		})
	}
	return tableData
}

func (v *TransactionListView) Render(title string, txs []ledger.Transaction) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions yet")
		return nil
	}

	pterm.DefaultSection.Println(title)
	if err := pterm.DefaultTable.WithHasHeader().WithData(v.Rows(txs)).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}
