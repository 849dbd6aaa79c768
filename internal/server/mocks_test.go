package server

import (
	"context"
	"sync"
	"time"

	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/service"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	DashboardFunc  func(accountID int64) (*service.Dashboard, error)
	RecentFunc     func(accountID int64, limit int) ([]ledger.Transaction, error)
	GoalsFunc      func(accountID int64) ([]service.GoalStatus, error)
	CreateGoalFunc func(accountID int64, name string, target int64, frequency string) (ledger.Goal, error)
	DepositFunc    func(accountID, amount int64, method ledger.Method) (ledger.Result, error)
	WithdrawFunc   func(accountID, amount int64) (ledger.Result, error)
	ContributeFunc func(accountID, goalID, amount int64) (ledger.Result, error)
}

func (m *MockLedgerService) Dashboard(accountID int64) (*service.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(accountID)
	}
	return &service.Dashboard{}, nil
}

func (m *MockLedgerService) Recent(accountID int64, limit int) ([]ledger.Transaction, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(accountID, limit)
	}
	return nil, nil
}

func (m *MockLedgerService) Goals(accountID int64) ([]service.GoalStatus, error) {
	if m.GoalsFunc != nil {
		return m.GoalsFunc(accountID)
	}
	return nil, nil
}

func (m *MockLedgerService) CreateGoal(accountID int64, name string, target int64, frequency string) (ledger.Goal, error) {
	if m.CreateGoalFunc != nil {
		return m.CreateGoalFunc(accountID, name, target, frequency)
	}
	return ledger.Goal{}, nil
}

func (m *MockLedgerService) Deposit(accountID, amount int64, method ledger.Method) (ledger.Result, error) {
	if m.DepositFunc != nil {
		return m.DepositFunc(accountID, amount, method)
	}
	return ledger.Result{}, nil
}

func (m *MockLedgerService) Withdraw(accountID, amount int64) (ledger.Result, error) {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(accountID, amount)
	}
	return ledger.Result{}, nil
}

func (m *MockLedgerService) Contribute(accountID, goalID, amount int64) (ledger.Result, error) {
	if m.ContributeFunc != nil {
		return m.ContributeFunc(accountID, goalID, amount)
	}
	return ledger.Result{}, nil
}

// memoryStore is an in-process IdempotencyStore.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	locks  map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, locks: map[string]bool{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *memoryStore) Unlock(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *memoryStore) Save(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
