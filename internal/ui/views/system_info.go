package views

import (
	"fmt"

	"github.com/koso-app/koso/internal/utils"
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath     string
	DBPath         string
	DBExists       bool
	Account        string
	Currency       string
	Symbol         string
	WithdrawalFee  int64
	MinimumDeposit int64
	AuthURL        string
	LogLevel       string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Default Account", data.Account},
		{"Currency", fmt.Sprintf("%s (%s)", data.Currency, data.Symbol)},
		{"Withdrawal Fee", utils.FormatAmount(data.WithdrawalFee, data.Symbol)},
		{"Minimum Deposit", utils.FormatAmount(data.MinimumDeposit, data.Symbol)},
		{"Auth Service", data.AuthURL},
		{"Log Level", data.LogLevel},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
