// Package ledger holds the savings ledger: one account balance, its savings
// goals and the audit log of every balance-affecting event.
//
// All mutations go through Apply, which validates against the current state,
// computes the complete new state, optionally hands it to a CommitFunc for a
// durable write and only then installs it. A failed validation or commit
// leaves the ledger untouched.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// Policy holds the business constants that gate ledger operations.
type Policy struct {
	WithdrawalFee  int64
	MinimumDeposit int64
	HistoryWindow  int
}

func DefaultPolicy() Policy {
	return Policy{
		WithdrawalFee:  50,
		MinimumDeposit: 100,
		HistoryWindow:  5,
	}
}

// State is the persisted form of a ledger. Transactions are oldest-first.
type State struct {
	Opening      int64
	Balance      int64
	Goals        []Goal
	Transactions []Transaction
}

// CommitFunc durably records a Result before the ledger installs it.
// Returning an error aborts the operation.
type CommitFunc func(Result) error

type Option func(*Ledger)

func WithPolicy(p Policy) Option {
	return func(l *Ledger) { l.policy = p }
}

// WithClock overrides the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Ledger serialises every operation on one account behind a single mutex.
type Ledger struct {
	mu      sync.Mutex
	policy  Policy
	now     func() time.Time
	opening int64
	balance int64
	goals   map[int64]*Goal
	log     []Transaction // oldest-first
	nextID  int64
}

// New restores a ledger from state. The balance must reconcile with the
// opening balance and the transaction log.
func New(state State, opts ...Option) (*Ledger, error) {
	if state.Opening < 0 {
		return nil, fmt.Errorf("%w: negative opening balance %d", ErrInvalidAmount, state.Opening)
	}

	l := &Ledger{
		policy:  DefaultPolicy(),
		now:     time.Now,
		opening: state.Opening,
		goals:   make(map[int64]*Goal, len(state.Goals)),
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, g := range state.Goals {
		if err := g.validate(); err != nil {
			return nil, err
		}
		if _, ok := l.goals[g.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrGoalExists, g.ID)
		}
		cp := g
		l.goals[g.ID] = &cp
	}

	expected := state.Opening
	for _, tx := range state.Transactions {
		expected += tx.Effect()
		if tx.ID > l.nextID {
			l.nextID = tx.ID
		}
	}
	if expected != state.Balance {
		return nil, fmt.Errorf("%w: balance %d, opening plus effects %d", ErrStateMismatch, state.Balance, expected)
	}

	l.balance = state.Balance
	l.log = append([]Transaction(nil), state.Transactions...)
	sort.SliceStable(l.log, func(i, j int) bool { return l.log[i].ID < l.log[j].ID })

	return l, nil
}

// NewWithBalance starts an empty ledger holding an opening balance.
func NewWithBalance(opening int64, goals []Goal, opts ...Option) (*Ledger, error) {
	return New(State{Opening: opening, Balance: opening, Goals: goals}, opts...)
}

func (l *Ledger) Policy() Policy {
	return l.policy
}

func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Goals returns copies of all goals ordered by ID.
func (l *Ledger) Goals() []Goal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Goal, 0, len(l.goals))
	for _, g := range l.goals {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Ledger) Goal(id int64) (Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.goals[id]
	if !ok {
		return Goal{}, fmt.Errorf("%w: id %d", ErrGoalNotFound, id)
	}
	return *g, nil
}

// GoalCommitFunc durably records a new goal and returns the ID it was given.
type GoalCommitFunc func(Goal) (int64, error)

// AddGoal registers a new goal. With a commit func the goal is recorded and
// numbered while the ledger is locked; without one g.ID must already be set.
func (l *Ledger) AddGoal(g Goal, commit GoalCommitFunc) (Goal, error) {
	if err := g.validate(); err != nil {
		return Goal{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if commit != nil {
		id, err := commit(g)
		if err != nil {
			return Goal{}, fmt.Errorf("failed to commit goal '%s': %w", g.Name, err)
		}
		g.ID = id
	}
	if existing, ok := l.goals[g.ID]; ok {
		if commit != nil {
			// already picked up by a reload of the committed row
			return *existing, nil
		}
		return Goal{}, fmt.Errorf("%w: id %d", ErrGoalExists, g.ID)
	}
	cp := g
	l.goals[g.ID] = &cp
	return g, nil
}

// Recent returns at most n transactions, newest first. n <= 0 uses the
// policy's history window.
func (l *Ledger) Recent(n int) []Transaction {
	if n <= 0 {
		n = l.policy.HistoryWindow
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return newestFirst(l.log, n)
}

// History returns the full audit log, newest first.
func (l *Ledger) History() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return newestFirst(l.log, len(l.log))
}

func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := State{
		Opening:      l.opening,
		Balance:      l.balance,
		Transactions: append([]Transaction(nil), l.log...),
	}
	for _, g := range l.goals {
		s.Goals = append(s.Goals, *g)
	}
	sort.Slice(s.Goals, func(i, j int) bool { return s.Goals[i].ID < s.Goals[j].ID })
	return s
}

func (l *Ledger) Deposit(amount int64, method Method) (Result, error) {
	return l.Apply(Deposit(amount, method), nil)
}

func (l *Ledger) Withdraw(amount int64) (Result, error) {
	return l.Apply(Withdrawal(amount), nil)
}

func (l *Ledger) Contribute(goalID, amount int64) (Result, error) {
	return l.Apply(Contribution(goalID, amount), nil)
}

// Apply validates op, commits the resulting state through commit (if any)
// and installs it. It is the only mutation path of the ledger.
func (l *Ledger) Apply(op Operation, commit CommitFunc) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.plan(op)
	if err != nil {
		return Result{}, err
	}

	if commit != nil {
		if err := commit(res); err != nil {
			return Result{}, fmt.Errorf("failed to commit %s: %w", op.Kind, err)
		}
	}

	l.balance = res.Balance
	if res.Goal != nil {
		g := *res.Goal
		l.goals[g.ID] = &g
	}
	l.nextID = res.Transaction.ID
	l.log = append(l.log, res.Transaction)

	return res, nil
}

// plan computes the state after op without touching the ledger. Callers hold mu.
func (l *Ledger) plan(op Operation) (Result, error) {
	tx := Transaction{
		ID:        l.nextID + 1,
		Kind:      op.Kind,
		Amount:    op.Amount,
		CreatedAt: l.now(),
	}

	switch op.Kind {
	case KindDeposit:
		if op.Amount <= 0 {
			return Result{}, fmt.Errorf("%w: deposit must be greater than 0", ErrInvalidAmount)
		}
		if op.Amount < l.policy.MinimumDeposit {
			return Result{}, fmt.Errorf("%w: minimum deposit is %d", ErrInvalidAmount, l.policy.MinimumDeposit)
		}
		if !op.Method.Valid() {
			return Result{}, fmt.Errorf("%w: %q", ErrInvalidMethod, op.Method)
		}
		if op.Amount > math.MaxInt64-l.balance {
			return Result{}, fmt.Errorf("%w: deposit would overflow the balance", ErrInvalidAmount)
		}
		tx.Method = op.Method
		tx.Description = "Money added via " + op.Method.DisplayName()
		return Result{Balance: l.balance + op.Amount, Transaction: tx}, nil

	case KindWithdrawal:
		if op.Amount <= 0 {
			return Result{}, fmt.Errorf("%w: withdrawal must be greater than 0", ErrInvalidAmount)
		}
		fee := l.policy.WithdrawalFee
		if op.Amount > l.balance-fee {
			return Result{}, fmt.Errorf("%w: need %d plus %d fee, have %d",
				ErrInsufficientFunds, op.Amount, fee, l.balance)
		}
		tx.Fee = fee
		tx.Description = "Withdrawal"
		return Result{Balance: l.balance - op.Amount - fee, Transaction: tx}, nil

	case KindGoalContribution:
		g, ok := l.goals[op.GoalID]
		if !ok {
			return Result{}, fmt.Errorf("%w: id %d", ErrGoalNotFound, op.GoalID)
		}
		if op.Amount <= 0 {
			return Result{}, fmt.Errorf("%w: contribution must be greater than 0", ErrInvalidAmount)
		}
		if op.Amount > l.balance {
			return Result{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, op.Amount, l.balance)
		}
		if op.Amount > math.MaxInt64-g.Current {
			return Result{}, fmt.Errorf("%w: contribution would overflow %s", ErrInvalidAmount, g.Name)
		}
		updated := *g
		updated.Current += op.Amount
		tx.GoalID = g.ID
		tx.Description = g.Name + " goal contribution"
		return Result{Balance: l.balance - op.Amount, Goal: &updated, Transaction: tx}, nil

	default:
		return Result{}, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

func newestFirst(log []Transaction, n int) []Transaction {
	if n > len(log) {
		n = len(log)
	}
	out := make([]Transaction, 0, n)
	for i := len(log) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, log[i])
	}
	return out
}
