package views

import (
	"fmt"

	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/ui"
	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

// FeeStatusText is the monthly fee line shown under the balance.
func FeeStatusText(fee service.FeeStatus, symbol string) string {
	if fee.Active {
		return fmt.Sprintf("Monthly fee: %s (Active)", utils.FormatAmount(fee.Fee, symbol))
	}
	return fmt.Sprintf("Below %s minimum", utils.FormatAmount(fee.Threshold, symbol))
}

func RenderDashboard(d *service.Dashboard, symbol string) error {
	ui.PrintL1Title("%s savings", d.Name)
	pterm.Println()

	pterm.DefaultBasicText.Printf("Total Balance  %s\n", ui.Money(d.Balance, symbol))
	feeLine := FeeStatusText(d.MonthlyFee, symbol)
	if d.MonthlyFee.Active {
		pterm.FgGray.Println(feeLine)
	} else {
		pterm.FgYellow.Println(feeLine)
	}
	pterm.Println()

	ui.PrintL2Title("Savings Goals")
	if err := RenderGoals(d.Goals, symbol); err != nil {
		return err
	}
	pterm.Println()

	ui.PrintL2Title("Recent Transactions")
	return NewTransactionListView(symbol).Render("Latest activity", d.Recent)
}
