package service

import (
	"github.com/koso-app/koso/internal/ledger"
)

// FeeStatus reports whether the monthly maintenance fee applies to the
// current balance. It is informational; no fee is ever deducted.
type FeeStatus struct {
	Fee       int64 `json:"fee"`
	Threshold int64 `json:"threshold"`
	Active    bool  `json:"active"`
}

type Dashboard struct {
	AccountID  int64                `json:"account_id"`
	Name       string               `json:"name"`
	Currency   string               `json:"currency"`
	Balance    int64                `json:"balance"`
	MonthlyFee FeeStatus            `json:"monthly_fee"`
	Goals      []GoalStatus         `json:"goals"`
	Recent     []ledger.Transaction `json:"recent_transactions"`
}

func (ls *LedgerService) Dashboard(accountID int64) (*Dashboard, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return nil, err
	}
	acc, err := ls.repo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	balance := l.Balance()
	return &Dashboard{
		AccountID:  acc.ID,
		Name:       acc.Name,
		Currency:   acc.Currency,
		Balance:    balance,
		MonthlyFee: ls.feeStatus(balance),
		Goals:      goalStatuses(l.Goals()),
		Recent:     l.Recent(0),
	}, nil
}

func (ls *LedgerService) feeStatus(balance int64) FeeStatus {
	return FeeStatus{
		Fee:       ls.config.Ledger.MonthlyFee,
		Threshold: ls.config.Ledger.MonthlyFeeThreshold,
		Active:    balance >= ls.config.Ledger.MonthlyFeeThreshold,
	}
}
