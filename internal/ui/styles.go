package ui

import (
	"fmt"

	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgGreen, pterm.FgBlack, pterm.Bold)
	text := fmt.Sprintf(format, a...)
	style.Println(fmt.Sprintf(" %s   ", text))
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	text := fmt.Sprintf(format, a...)
	style.Println(fmt.Sprintf("# %s   ", text))
}

// Money renders an amount in bold, red when negative.
func Money(amount int64, symbol string) string {
	text := utils.FormatAmount(amount, symbol)
	if amount < 0 {
		return pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(text)
	}
	return pterm.NewStyle(pterm.Bold).Sprint(text)
}

// SignedMoney renders a balance change with an explicit sign: +₦5,000 / -₦2,050.
func SignedMoney(delta int64, symbol string) string {
	if delta >= 0 {
		return pterm.FgGreen.Sprint("+" + utils.FormatAmount(delta, symbol))
	}
	return pterm.FgRed.Sprint(utils.FormatAmount(delta, symbol))
}
