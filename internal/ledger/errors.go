package ledger

import "errors"

// Domain errors returned by Ledger operations. None of them leave the ledger
// in a modified state; callers classify them with errors.Is.
var (
	// ErrInvalidAmount: missing, zero, negative or below the minimum deposit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds: the debit (including any fee) exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient balance")

	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("goal already exists")

	// ErrInvalidTarget: a goal target must be a positive amount.
	ErrInvalidTarget = errors.New("goal target must be positive")

	ErrInvalidMethod = errors.New("unknown deposit method")

	// ErrStateMismatch: a restored balance does not equal opening plus the
	// signed effects of its transactions.
	ErrStateMismatch = errors.New("ledger state does not reconcile")
)
