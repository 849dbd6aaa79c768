package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc LedgerService, idem IdempotencyStore) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRouter(NewHandler(svc, log), idem, time.Hour, log)
}

func do(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestDeposit_Success(t *testing.T) {
	mock := &MockLedgerService{}
	mock.DepositFunc = func(accountID, amount int64, method ledger.Method) (ledger.Result, error) {
		assert.Equal(t, int64(1), accountID)
		assert.Equal(t, int64(5000), amount)
		assert.Equal(t, ledger.MethodBank, method)
		return ledger.Result{
			Balance:     50750,
			Transaction: ledger.Transaction{ID: 1, Kind: ledger.KindDeposit, Amount: 5000, Method: method},
		}, nil
	}

	w := do(newTestRouter(mock, nil), http.MethodPost, "/accounts/1/deposits", `{"amount":5000,"method":"bank"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var res ledger.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int64(50750), res.Balance)
	assert.Equal(t, ledger.KindDeposit, res.Transaction.Kind)
}

func TestDeposit_UnknownMethod(t *testing.T) {
	mock := &MockLedgerService{}
	mock.DepositFunc = func(int64, int64, ledger.Method) (ledger.Result, error) {
		t.Error("service must not be called")
		return ledger.Result{}, nil
	}

	w := do(newTestRouter(mock, nil), http.MethodPost, "/accounts/1/deposits", `{"amount":5000,"method":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrapped: %w", ledger.ErrInvalidAmount), http.StatusBadRequest},
		{ledger.ErrInvalidTarget, http.StatusBadRequest},
		{ledger.ErrInsufficientFunds, http.StatusConflict},
		{ledger.ErrGoalNotFound, http.StatusNotFound},
		{fmt.Errorf("failed to load account 9: %w", store.ErrRecordNotFound), http.StatusNotFound},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		mock := &MockLedgerService{}
		mock.WithdrawFunc = func(int64, int64) (ledger.Result, error) {
			return ledger.Result{}, tt.err
		}
		w := do(newTestRouter(mock, nil), http.MethodPost, "/accounts/1/withdrawals", `{"amount":100}`)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		if tt.status == http.StatusInternalServerError {
			assert.Equal(t, "internal server error", errorBody(t, w))
		} else {
			assert.Contains(t, errorBody(t, w), tt.err.Error())
		}
	}
}

func TestWithdraw_HugeAmountIsConflict(t *testing.T) {
	l, err := ledger.NewWithBalance(45700, nil)
	require.NoError(t, err)
	mock := &MockLedgerService{}
	mock.WithdrawFunc = func(_ int64, amount int64) (ledger.Result, error) {
		return l.Withdraw(amount)
	}
	h := newTestRouter(mock, nil)

	for _, body := range []string{`{"amount":9223372036854775807}`, `{"amount":9223372036854775797}`} {
		w := do(h, http.MethodPost, "/accounts/1/withdrawals", body)
		assert.Equal(t, http.StatusConflict, w.Code, body)
		assert.Contains(t, errorBody(t, w), ledger.ErrInsufficientFunds.Error())
	}
	assert.Equal(t, int64(45700), l.Balance())
}

func TestBadRequests(t *testing.T) {
	h := newTestRouter(&MockLedgerService{}, nil)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/accounts/abc/withdrawals", `{"amount":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/accounts/1/withdrawals", `{"amount":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/accounts/1/withdrawals", `{"amount":"1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/accounts/1/transactions?limit=x", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodDelete, "/accounts/1/dashboard", "").Code)
}

func TestContribute_PassesGoal(t *testing.T) {
	mock := &MockLedgerService{}
	mock.ContributeFunc = func(accountID, goalID, amount int64) (ledger.Result, error) {
		assert.Equal(t, int64(2), accountID)
		assert.Equal(t, int64(7), goalID)
		return ledger.Result{
			Balance: 45700,
			Goal:    &ledger.Goal{ID: 7, Name: "Food", Target: 30000, Current: 21500},
		}, nil
	}

	w := do(newTestRouter(mock, nil), http.MethodPost, "/accounts/2/goals/7/contributions", `{"amount":3000}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current":21500`)
}

func TestGoals_ListAndCreate(t *testing.T) {
	mock := &MockLedgerService{}
	mock.GoalsFunc = func(int64) ([]service.GoalStatus, error) {
		g := ledger.Goal{ID: 1, Name: "Food", Target: 30000, Current: 18500}
		return []service.GoalStatus{{Goal: g, Progress: g.Progress(), Remaining: g.Remaining()}}, nil
	}
	mock.CreateGoalFunc = func(accountID int64, name string, target int64, frequency string) (ledger.Goal, error) {
		return ledger.Goal{ID: 4, Name: name, Target: target, Frequency: frequency}, nil
	}
	h := newTestRouter(mock, nil)

	w := do(h, http.MethodGet, "/accounts/1/goals", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var goals []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, "Food", goals[0]["name"])
	assert.Equal(t, float64(62), goals[0]["progress"])

	w = do(h, http.MethodPost, "/accounts/1/goals", `{"name":"Car","target":2000000,"frequency":"Yearly"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Car"`)
}

func TestTransactions_Limit(t *testing.T) {
	mock := &MockLedgerService{}
	mock.RecentFunc = func(accountID int64, limit int) ([]ledger.Transaction, error) {
		assert.Equal(t, 3, limit)
		return nil, nil
	}

	w := do(newTestRouter(mock, nil), http.MethodGet, "/accounts/1/transactions?limit=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDashboard(t *testing.T) {
	mock := &MockLedgerService{}
	mock.DashboardFunc = func(accountID int64) (*service.Dashboard, error) {
		return &service.Dashboard{AccountID: accountID, Name: "main", Balance: 45750,
			MonthlyFee: service.FeeStatus{Fee: 100, Threshold: 2500, Active: true}}, nil
	}

	w := do(newTestRouter(mock, nil), http.MethodGet, "/accounts/5/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, int64(5), d.AccountID)
	assert.True(t, d.MonthlyFee.Active)
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	var calls int32
	mock := &MockLedgerService{}
	mock.DepositFunc = func(accountID, amount int64, method ledger.Method) (ledger.Result, error) {
		n := atomic.AddInt32(&calls, 1)
		return ledger.Result{Balance: 1000 * int64(n)}, nil
	}
	h := newTestRouter(mock, newMemoryStore())

	first := do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"ussd"}`, IdempotencyHeader, "k1")
	second := do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"ussd"}`, IdempotencyHeader, "k1")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyHitHeader))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"ussd"}`, IdempotencyHeader, "k2")
	do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"ussd"}`)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestIdempotencyReplaysStatusCode(t *testing.T) {
	var calls int32
	mock := &MockLedgerService{}
	mock.CreateGoalFunc = func(_ int64, name string, target int64, frequency string) (ledger.Goal, error) {
		atomic.AddInt32(&calls, 1)
		return ledger.Goal{ID: 4, Name: name, Target: target, Frequency: frequency}, nil
	}
	h := newTestRouter(mock, newMemoryStore())

	body := `{"name":"Car","target":2000000,"frequency":"Yearly"}`
	first := do(h, http.MethodPost, "/accounts/1/goals", body, IdempotencyHeader, "g1")
	second := do(h, http.MethodPost, "/accounts/1/goals", body, IdempotencyHeader, "g1")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyHitHeader))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotencyCorruptEntry(t *testing.T) {
	idem := newMemoryStore()
	require.NoError(t, idem.Save(context.Background(), "POST:/accounts/1/deposits:bad", "not json", time.Hour))
	h := newTestRouter(&MockLedgerService{}, idem)

	w := do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"bank"}`, IdempotencyHeader, "bad")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	var calls int32
	mock := &MockLedgerService{}
	mock.WithdrawFunc = func(int64, int64) (ledger.Result, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return ledger.Result{}, ledger.ErrInsufficientFunds
		}
		return ledger.Result{Balance: 10}, nil
	}
	h := newTestRouter(mock, newMemoryStore())

	first := do(h, http.MethodPost, "/accounts/1/withdrawals", `{"amount":100}`, IdempotencyHeader, "w1")
	second := do(h, http.MethodPost, "/accounts/1/withdrawals", `{"amount":100}`, IdempotencyHeader, "w1")

	assert.Equal(t, http.StatusConflict, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, second.Header().Get(IdempotencyHitHeader))
}

func TestIdempotencyRejectsInFlightDuplicate(t *testing.T) {
	idem := newMemoryStore()
	h := newTestRouter(&MockLedgerService{}, idem)

	locked, err := idem.Lock(context.Background(), "POST:/accounts/1/deposits:dup", time.Second)
	require.NoError(t, err)
	require.True(t, locked)

	w := do(h, http.MethodPost, "/accounts/1/deposits", `{"amount":1000,"method":"bank"}`, IdempotencyHeader, "dup")
	assert.Equal(t, http.StatusConflict, w.Code)
}
