package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koso-app/koso/internal/config"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/store"
	"github.com/koso-app/koso/internal/validation"
	"github.com/sirupsen/logrus"
)

// GoalSeed describes a goal created together with a new account.
type GoalSeed struct {
	Name      string
	Target    int64
	Current   int64
	Frequency string
}

// GoalStatus is a goal together with its display progress.
type GoalStatus struct {
	ledger.Goal
	Progress  int   `json:"progress"`
	Remaining int64 `json:"remaining"`
}

// LedgerService persists ledger operations. Every account is served by one
// cached ledger.Ledger; its mutex also serialises the database writes.
type LedgerService struct {
	repo    store.Repository
	config  *config.Config
	log     *logrus.Logger
	ledgers *ledger.Registry
}

func NewLedgerService(repo store.Repository, cfg *config.Config, log *logrus.Logger) *LedgerService {
	ls := &LedgerService{repo: repo, config: cfg, log: log}
	ls.ledgers = ledger.NewRegistry(ls.load)
	return ls
}

// OpenAccount creates an account with an opening balance and optional goals.
func (ls *LedgerService) OpenAccount(name, currency string, opening int64, goals []GoalSeed) (*store.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name can't be empty")
	}
	if opening < 0 {
		return nil, fmt.Errorf("%w: opening balance can't be negative", ledger.ErrInvalidAmount)
	}
	for _, g := range goals {
		if err := validation.ValidateGoalName(g.Name); err != nil {
			return nil, err
		}
		if g.Target <= 0 {
			return nil, fmt.Errorf("%w: goal '%s'", ledger.ErrInvalidTarget, g.Name)
		}
	}

	var accountID int64
	var seeded []ledger.Goal
	err := ls.repo.ExecTx(func(repo store.Repository) error {
		id, err := repo.CreateAccount(name, currency, opening)
		if err != nil {
			return err
		}
		seeded = seeded[:0]
		for _, g := range goals {
			goalName := strings.TrimSpace(g.Name)
			goalID, err := repo.CreateGoal(id, goalName, g.Target, g.Current, g.Frequency)
			if err != nil {
				return err
			}
			seeded = append(seeded, ledger.Goal{
				ID:        goalID,
				Name:      goalName,
				Target:    g.Target,
				Current:   g.Current,
				Frequency: g.Frequency,
			})
		}
		accountID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open account '%s': %w", name, err)
	}

	ls.log.WithFields(logrus.Fields{
		"account_id": accountID,
		"opening":    opening,
		"goals":      len(goals),
	}).Info("account opened")

	if l, err := ledger.NewWithBalance(opening, seeded, ledger.WithPolicy(ls.config.Policy())); err == nil {
		ls.ledgers.Put(accountID, l)
	} else {
		ls.log.WithError(err).WithField("account_id", accountID).Warn("ledger will be loaded on first use")
	}

	return ls.repo.GetAccountByID(accountID)
}

func (ls *LedgerService) GetAccountByName(name string) (*store.Account, error) {
	return ls.repo.GetAccountByName(name)
}

func (ls *LedgerService) GetAccountByID(id int64) (*store.Account, error) {
	return ls.repo.GetAccountByID(id)
}

func (ls *LedgerService) Deposit(accountID, amount int64, method ledger.Method) (ledger.Result, error) {
	return ls.apply(accountID, ledger.Deposit(amount, method))
}

func (ls *LedgerService) Withdraw(accountID, amount int64) (ledger.Result, error) {
	return ls.apply(accountID, ledger.Withdrawal(amount))
}

func (ls *LedgerService) Contribute(accountID, goalID, amount int64) (ledger.Result, error) {
	return ls.apply(accountID, ledger.Contribution(goalID, amount))
}

// CreateGoal adds a goal with no progress to the account.
func (ls *LedgerService) CreateGoal(accountID int64, name string, target int64, frequency string) (ledger.Goal, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateGoalName(name); err != nil {
		return ledger.Goal{}, err
	}
	if target <= 0 {
		return ledger.Goal{}, fmt.Errorf("%w: %d", ledger.ErrInvalidTarget, target)
	}

	l, err := ls.ledger(accountID)
	if err != nil {
		return ledger.Goal{}, err
	}

	g, err := l.AddGoal(ledger.Goal{Name: name, Target: target, Frequency: frequency}, func(g ledger.Goal) (int64, error) {
		return ls.repo.CreateGoal(accountID, g.Name, g.Target, 0, g.Frequency)
	})
	if err != nil {
		if errors.Is(err, store.ErrGoalExists) {
			return ledger.Goal{}, fmt.Errorf("%w: '%s'", ledger.ErrGoalExists, name)
		}
		return ledger.Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}

	ls.log.WithFields(logrus.Fields{"account_id": accountID, "goal_id": g.ID, "target": target}).Info("goal created")
	return g, nil
}

func (ls *LedgerService) Goals(accountID int64) ([]GoalStatus, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return nil, err
	}
	return goalStatuses(l.Goals()), nil
}

func (ls *LedgerService) Goal(accountID, goalID int64) (GoalStatus, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return GoalStatus{}, err
	}
	g, err := l.Goal(goalID)
	if err != nil {
		return GoalStatus{}, err
	}
	return newGoalStatus(g), nil
}

func (ls *LedgerService) Balance(accountID int64) (int64, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return 0, err
	}
	return l.Balance(), nil
}

// Recent returns at most limit transactions, newest first. limit <= 0 uses
// the configured history window.
func (ls *LedgerService) Recent(accountID int64, limit int) ([]ledger.Transaction, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return nil, err
	}
	return l.Recent(limit), nil
}

func (ls *LedgerService) History(accountID int64) ([]ledger.Transaction, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return nil, err
	}
	return l.History(), nil
}

// Policy returns the rules the ledgers are built with.
func (ls *LedgerService) Policy() ledger.Policy {
	return ls.config.Policy()
}

func (ls *LedgerService) ledger(accountID int64) (*ledger.Ledger, error) {
	l, err := ls.ledgers.Get(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", accountID, err)
	}
	return l, nil
}

// apply runs op against the account's ledger and writes the result in one
// database transaction before the ledger installs it.
func (ls *LedgerService) apply(accountID int64, op ledger.Operation) (ledger.Result, error) {
	l, err := ls.ledger(accountID)
	if err != nil {
		return ledger.Result{}, err
	}

	res, err := l.Apply(op, func(r ledger.Result) error {
		return ls.repo.ExecTx(func(repo store.Repository) error {
			if err := repo.CreateTransaction(toStoreTransaction(accountID, r.Transaction)); err != nil {
				return err
			}
			if err := repo.UpdateAccountBalance(accountID, r.Balance); err != nil {
				return err
			}
			if r.Goal != nil {
				return repo.UpdateGoalCurrent(r.Goal.ID, r.Goal.Current)
			}
			return nil
		})
	})

	fields := logrus.Fields{
		"account_id": accountID,
		"kind":       op.Kind,
		"amount":     op.Amount,
	}
	if err != nil {
		if !isRuleViolation(err) {
			// the cached ledger may no longer match the database
			ls.ledgers.Evict(accountID)
		}
		ls.log.WithFields(fields).WithError(err).Warn("ledger operation rejected")
		return ledger.Result{}, err
	}

	fields["balance"] = res.Balance
	ls.log.WithFields(fields).Info("ledger operation committed")
	return res, nil
}

// load rebuilds an account's ledger from the database.
func (ls *LedgerService) load(accountID int64) (*ledger.Ledger, error) {
	acc, err := ls.repo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	goals, err := ls.repo.GetGoalsByAccount(accountID)
	if err != nil {
		return nil, err
	}
	txs, err := ls.repo.GetTransactionsByAccount(accountID)
	if err != nil {
		return nil, err
	}

	state := ledger.State{
		Opening:      acc.Opening,
		Balance:      acc.Balance,
		Goals:        make([]ledger.Goal, 0, len(goals)),
		Transactions: make([]ledger.Transaction, 0, len(txs)),
	}
	for _, g := range goals {
		state.Goals = append(state.Goals, ledger.Goal{
			ID:        g.ID,
			Name:      g.Name,
			Target:    g.Target,
			Current:   g.Current,
			Frequency: g.Frequency,
		})
	}
	for _, tx := range txs {
		state.Transactions = append(state.Transactions, toLedgerTransaction(tx))
	}

	l, err := ledger.New(state, ledger.WithPolicy(ls.config.Policy()))
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", accountID, err)
	}
	ls.log.WithFields(logrus.Fields{"account_id": accountID, "transactions": len(txs)}).Debug("ledger loaded")
	return l, nil
}

func isRuleViolation(err error) bool {
	for _, target := range []error{
		ledger.ErrInvalidAmount,
		ledger.ErrInsufficientFunds,
		ledger.ErrGoalNotFound,
		ledger.ErrInvalidMethod,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toStoreTransaction(accountID int64, tx ledger.Transaction) store.Transaction {
	st := store.Transaction{
		AccountID:   accountID,
		Seq:         tx.ID,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount,
		Fee:         tx.Fee,
		Method:      string(tx.Method),
		Description: tx.Description,
		Timestamp:   tx.CreatedAt.Unix(),
	}
	if tx.GoalID != 0 {
		goalID := tx.GoalID
		st.GoalID = &goalID
	}
	return st
}

func toLedgerTransaction(tx *store.Transaction) ledger.Transaction {
	lt := ledger.Transaction{
		ID:          tx.Seq,
		Kind:        ledger.Kind(tx.Kind),
		Amount:      tx.Amount,
		Fee:         tx.Fee,
		Method:      ledger.Method(tx.Method),
		Description: tx.Description,
		CreatedAt:   time.Unix(tx.Timestamp, 0),
	}
	if tx.GoalID != nil {
		lt.GoalID = *tx.GoalID
	}
	return lt
}

func newGoalStatus(g ledger.Goal) GoalStatus {
	return GoalStatus{Goal: g, Progress: g.Progress(), Remaining: g.Remaining()}
}

func goalStatuses(goals []ledger.Goal) []GoalStatus {
	out := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		out = append(out, newGoalStatus(g))
	}
	return out
}
