package ledger

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindDeposit          Kind = "deposit"
	KindWithdrawal       Kind = "withdrawal"
	KindGoalContribution Kind = "goal_contribution"
)

// Method is the funding channel of a deposit. It is informational only.
type Method string

const (
	MethodBank Method = "bank"
	MethodCard Method = "card"
	MethodUSSD Method = "ussd"
)

// Methods lists the deposit methods in display order.
var Methods = []Method{MethodBank, MethodCard, MethodUSSD}

func (m Method) DisplayName() string {
	switch m {
	case MethodBank:
		return "Bank Transfer"
	case MethodCard:
		return "Debit Card"
	case MethodUSSD:
		return "USSD Code"
	default:
		return string(m)
	}
}

func (m Method) Valid() bool {
	switch m {
	case MethodBank, MethodCard, MethodUSSD:
		return true
	}
	return false
}

// ParseMethod accepts a method id ("bank") or its display name ("Bank Transfer").
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	for _, m := range Methods {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.DisplayName()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be bank, card or ussd)", ErrInvalidMethod, s)
}

// Transaction is an immutable record of one balance-affecting event.
type Transaction struct {
	ID          int64     `json:"id"`
	Kind        Kind      `json:"kind"`
	Amount      int64     `json:"amount"`
	Fee         int64     `json:"fee,omitempty"`
	GoalID      int64     `json:"goal_id,omitempty"`
	Method      Method    `json:"method,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Effect returns the signed change this transaction applied to the balance.
func (t Transaction) Effect() int64 {
	switch t.Kind {
	case KindDeposit:
		return t.Amount
	case KindWithdrawal:
		return -(t.Amount + t.Fee)
	case KindGoalContribution:
		return -t.Amount
	default:
		return 0
	}
}

// Operation describes one requested ledger mutation. Build it with Deposit,
// Withdrawal or Contribution.
type Operation struct {
	Kind   Kind
	Amount int64
	Method Method
	GoalID int64
}

func Deposit(amount int64, method Method) Operation {
	return Operation{Kind: KindDeposit, Amount: amount, Method: method}
}

func Withdrawal(amount int64) Operation {
	return Operation{Kind: KindWithdrawal, Amount: amount}
}

func Contribution(goalID, amount int64) Operation {
	return Operation{Kind: KindGoalContribution, Amount: amount, GoalID: goalID}
}

// Result is the complete state change produced by a successful operation.
// Goal is set only for contributions and holds the goal after the credit.
type Result struct {
	Balance     int64       `json:"balance"`
	Goal        *Goal       `json:"goal,omitempty"`
	Transaction Transaction `json:"transaction"`
}
