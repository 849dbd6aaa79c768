package server

import (
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/service"
)

// LedgerService defines the ledger operations used by the handlers.
type LedgerService interface {
	Dashboard(accountID int64) (*service.Dashboard, error)
	Recent(accountID int64, limit int) ([]ledger.Transaction, error)
	Goals(accountID int64) ([]service.GoalStatus, error)
	CreateGoal(accountID int64, name string, target int64, frequency string) (ledger.Goal, error)
	Deposit(accountID, amount int64, method ledger.Method) (ledger.Result, error)
	Withdraw(accountID, amount int64) (ledger.Result, error)
	Contribute(accountID, goalID, amount int64) (ledger.Result, error)
}
