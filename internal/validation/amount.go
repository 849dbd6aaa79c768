package validation

import (
	"fmt"

	"github.com/koso-app/koso/internal/utils"
)

// AmountValidator checks typed amounts before they reach the ledger, so
// interactive prompts can reject input early. The ledger re-validates.
type AmountValidator struct {
	MinimumDeposit int64
	WithdrawalFee  int64
	Symbol         string
}

func (v AmountValidator) parsePositive(s string) (int64, error) {
	amount, err := utils.ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("please enter a valid amount")
	}
	return amount, nil
}

// ValidateDeposit checks a deposit amount against the minimum.
func (v AmountValidator) ValidateDeposit(s string) error {
	amount, err := v.parsePositive(s)
	if err != nil {
		return err
	}
	if amount < v.MinimumDeposit {
		return fmt.Errorf("minimum amount is %s", utils.FormatAmount(v.MinimumDeposit, v.Symbol))
	}
	return nil
}

// ValidateWithdrawal returns a validator bound to the current balance; the
// fee counts against the balance.
func (v AmountValidator) ValidateWithdrawal(balance int64) func(string) error {
	return func(s string) error {
		amount, err := v.parsePositive(s)
		if err != nil {
			return err
		}
		if amount > balance-v.WithdrawalFee {
			return fmt.Errorf("insufficient balance (including %s fee)", utils.FormatAmount(v.WithdrawalFee, v.Symbol))
		}
		return nil
	}
}

// ValidateContribution returns a validator bound to the current balance.
func (v AmountValidator) ValidateContribution(balance int64) func(string) error {
	return func(s string) error {
		amount, err := v.parsePositive(s)
		if err != nil {
			return err
		}
		if amount > balance {
			return fmt.Errorf("insufficient balance")
		}
		return nil
	}
}
