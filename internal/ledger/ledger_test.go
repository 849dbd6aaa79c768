package ledger

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func demoGoals() []Goal {
	return []Goal{
		{ID: 1, Name: "Food", Target: 30000, Current: 18500, Frequency: "Monthly"},
		{ID: 2, Name: "House Rent", Target: 500000, Current: 125000, Frequency: "Yearly"},
		{ID: 3, Name: "School Fees", Target: 150000, Current: 89000, Frequency: "Semester"},
	}
}

func newDemoLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewWithBalance(45750, demoGoals(), WithClock(fixedClock()))
	require.NoError(t, err)
	return l
}

func TestDashboardScenario(t *testing.T) {
	l := newDemoLedger(t)

	res, err := l.Deposit(5000, MethodBank)
	require.NoError(t, err)
	assert.Equal(t, int64(50750), res.Balance)
	assert.Equal(t, KindDeposit, res.Transaction.Kind)
	assert.Equal(t, int64(5000), res.Transaction.Amount)
	assert.Equal(t, "Money added via Bank Transfer", res.Transaction.Description)

	head := l.Recent(0)
	require.Len(t, head, 1)
	assert.Equal(t, res.Transaction, head[0])

	res, err = l.Withdraw(2000)
	require.NoError(t, err)
	assert.Equal(t, int64(48700), res.Balance)
	assert.Equal(t, int64(50), res.Transaction.Fee)
	assert.Equal(t, int64(2000), res.Transaction.Amount)

	res, err = l.Contribute(1, 3000)
	require.NoError(t, err)
	assert.Equal(t, int64(45700), res.Balance)
	require.NotNil(t, res.Goal)
	assert.Equal(t, int64(21500), res.Goal.Current)
	assert.Equal(t, 72, res.Goal.Progress())
	assert.Equal(t, "Food goal contribution", res.Transaction.Description)
	assert.Equal(t, int64(1), res.Transaction.GoalID)

	_, err = l.Withdraw(100000)
	assert.True(t, errors.Is(err, ErrInsufficientFunds), "got %v", err)
	assert.Equal(t, int64(45700), l.Balance())
}

func TestDepositValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		method Method
		want   error
	}{
		{"zero", 0, MethodBank, ErrInvalidAmount},
		{"negative", -500, MethodBank, ErrInvalidAmount},
		{"below minimum", 99, MethodCard, ErrInvalidAmount},
		{"unknown method", 1000, Method("cash"), ErrInvalidMethod},
		{"empty method", 1000, "", ErrInvalidMethod},
		{"overflows balance", math.MaxInt64, MethodBank, ErrInvalidAmount},
		{"overflows by one", math.MaxInt64 - 45750 + 1, MethodBank, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newDemoLedger(t)
			_, err := l.Deposit(tt.amount, tt.method)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(45750), l.Balance())
			assert.Empty(t, l.History())
		})
	}
}

func TestDepositMinimumIsInclusive(t *testing.T) {
	l := newDemoLedger(t)
	res, err := l.Deposit(100, MethodUSSD)
	require.NoError(t, err)
	assert.Equal(t, int64(45850), res.Balance)
	assert.Equal(t, MethodUSSD, res.Transaction.Method)
}

func TestWithdrawIncludesFee(t *testing.T) {
	l, err := NewWithBalance(2050, nil)
	require.NoError(t, err)

	_, err = l.Withdraw(2001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(2050), l.Balance())

	res, err := l.Withdraw(2000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Balance)

	_, err = l.Withdraw(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = l.Withdraw(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWithdrawHugeAmountIsInsufficient(t *testing.T) {
	for _, amount := range []int64{math.MaxInt64, math.MaxInt64 - 10, math.MaxInt64 - 49} {
		l := newDemoLedger(t)
		_, err := l.Withdraw(amount)
		assert.ErrorIs(t, err, ErrInsufficientFunds, "amount=%d", amount)
		assert.Equal(t, int64(45750), l.Balance())
		assert.Empty(t, l.History())
	}

	p := DefaultPolicy()
	p.WithdrawalFee = 100
	l, err := NewWithBalance(60, nil, WithPolicy(p))
	require.NoError(t, err)
	_, err = l.Withdraw(1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestDepositUpToMaxBalance(t *testing.T) {
	l, err := NewWithBalance(0, nil)
	require.NoError(t, err)

	res, err := l.Deposit(math.MaxInt64, MethodBank)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), res.Balance)

	_, err = l.Deposit(100, MethodBank)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, int64(math.MaxInt64), l.Balance())
}

func TestContributeCannotOverflowGoal(t *testing.T) {
	l, err := NewWithBalance(1000, []Goal{{ID: 1, Name: "Big", Target: 10, Current: math.MaxInt64 - 5}})
	require.NoError(t, err)

	_, err = l.Contribute(1, 6)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	res, err := l.Contribute(1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), res.Goal.Current)
}

func TestWithdrawCustomFee(t *testing.T) {
	p := DefaultPolicy()
	p.WithdrawalFee = 0
	l, err := NewWithBalance(1000, nil, WithPolicy(p))
	require.NoError(t, err)

	res, err := l.Withdraw(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Balance)
	assert.Equal(t, int64(0), res.Transaction.Fee)
}

func TestContributeFailures(t *testing.T) {
	l := newDemoLedger(t)

	_, err := l.Contribute(99, 1000)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = l.Contribute(1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Repeated failed attempts never move the goal.
	for i := 0; i < 3; i++ {
		_, err = l.Contribute(1, 45751)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	}
	g, err := l.Goal(1)
	require.NoError(t, err)
	assert.Equal(t, int64(18500), g.Current)
	assert.Equal(t, int64(45750), l.Balance())
	assert.Empty(t, l.History())
}

func TestContributeNoFeeAndWholeBalance(t *testing.T) {
	l := newDemoLedger(t)
	res, err := l.Contribute(2, 45750)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Balance)
	assert.Equal(t, int64(0), res.Transaction.Fee)
}

func TestContributionMayExceedTarget(t *testing.T) {
	l, err := NewWithBalance(50000, []Goal{{ID: 7, Name: "Trip", Target: 1000}})
	require.NoError(t, err)

	res, err := l.Contribute(7, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), res.Goal.Current)
	assert.Equal(t, 100, res.Goal.Progress())
	assert.Equal(t, int64(0), res.Goal.Remaining())
}

func TestRecentWindow(t *testing.T) {
	l, err := NewWithBalance(0, nil)
	require.NoError(t, err)

	for i := 1; i <= 7; i++ {
		_, err := l.Deposit(int64(i*100), MethodBank)
		require.NoError(t, err)
	}

	recent := l.Recent(0)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(700), recent[0].Amount)
	assert.Equal(t, int64(300), recent[4].Amount)

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(50), 7)

	history := l.History()
	require.Len(t, history, 7)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].ID, history[i].ID)
	}
}

func TestBalanceReplaysFromEffects(t *testing.T) {
	l := newDemoLedger(t)
	ops := []Operation{
		Deposit(5000, MethodBank),
		Withdrawal(2000),
		Contribution(1, 3000),
		Withdrawal(1_000_000),
		Deposit(50, MethodCard),
		Contribution(3, 1200),
		Deposit(25000, MethodUSSD),
		Contribution(42, 10),
		Withdrawal(45000),
	}
	for _, op := range ops {
		_, _ = l.Apply(op, nil)
		assert.GreaterOrEqual(t, l.Balance(), int64(0))
	}

	var sum int64
	for _, tx := range l.History() {
		sum += tx.Effect()
	}
	assert.Equal(t, int64(45750)+sum, l.Balance())

	restored, err := New(l.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, l.Balance(), restored.Balance())
	assert.Equal(t, l.Goals(), restored.Goals())
	assert.Equal(t, l.History(), restored.History())
}

func TestApplyCommitFailureLeavesStateUntouched(t *testing.T) {
	l := newDemoLedger(t)
	boom := errors.New("disk full")

	_, err := l.Apply(Contribution(1, 3000), func(Result) error { return boom })
	assert.ErrorIs(t, err, boom)

	g, _ := l.Goal(1)
	assert.Equal(t, int64(18500), g.Current)
	assert.Equal(t, int64(45750), l.Balance())
	assert.Empty(t, l.History())

	var committed Result
	res, err := l.Apply(Contribution(1, 3000), func(r Result) error {
		committed = r
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, committed, res)
	assert.Equal(t, int64(1), res.Transaction.ID)
}

func TestApplyUnknownKind(t *testing.T) {
	l := newDemoLedger(t)
	_, err := l.Apply(Operation{Kind: "refund", Amount: 10}, nil)
	assert.Error(t, err)
}

func TestNewRejectsMismatchedState(t *testing.T) {
	_, err := New(State{
		Opening: 1000,
		Balance: 900,
		Transactions: []Transaction{
			{ID: 1, Kind: KindDeposit, Amount: 500},
		},
	})
	assert.ErrorIs(t, err, ErrStateMismatch)

	l, err := New(State{
		Opening: 1000,
		Balance: 1450,
		Transactions: []Transaction{
			{ID: 1, Kind: KindDeposit, Amount: 500},
			{ID: 2, Kind: KindWithdrawal, Amount: 0, Fee: 50},
		},
	})
	require.NoError(t, err)
	res, err := l.Deposit(100, MethodBank)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Transaction.ID)
}

func TestNewRejectsBadGoals(t *testing.T) {
	_, err := NewWithBalance(0, []Goal{{ID: 1, Name: "Zero", Target: 0}})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = NewWithBalance(0, []Goal{
		{ID: 1, Name: "A", Target: 10},
		{ID: 1, Name: "B", Target: 10},
	})
	assert.ErrorIs(t, err, ErrGoalExists)

	_, err = NewWithBalance(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAddGoal(t *testing.T) {
	l := newDemoLedger(t)

	g, err := l.AddGoal(Goal{ID: 4, Name: "Car", Target: 2_000_000, Frequency: "Yearly"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), g.ID)

	_, err = l.AddGoal(Goal{ID: 4, Name: "Car again", Target: 10}, nil)
	assert.ErrorIs(t, err, ErrGoalExists)
	_, err = l.AddGoal(Goal{ID: 5, Name: "Nothing", Target: -10}, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = l.AddGoal(Goal{ID: 6, Name: "  ", Target: 10}, nil)
	assert.Error(t, err)

	goals := l.Goals()
	require.Len(t, goals, 4)
	assert.Equal(t, "Car", goals[3].Name)
}

func TestAddGoalWithCommit(t *testing.T) {
	l := newDemoLedger(t)

	var committed Goal
	g, err := l.AddGoal(Goal{Name: "Car", Target: 5000}, func(g Goal) (int64, error) {
		committed = g
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), g.ID)
	assert.Equal(t, "Car", committed.Name)
	got, err := l.Goal(42)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	boom := errors.New("disk full")
	_, err = l.AddGoal(Goal{Name: "Trip", Target: 10}, func(Goal) (int64, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Len(t, l.Goals(), 4)

	_, err = l.AddGoal(Goal{Name: "Never", Target: 0}, func(Goal) (int64, error) {
		t.Error("commit must not run for an invalid goal")
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestAddGoalCommitAlreadyLoaded(t *testing.T) {
	l := newDemoLedger(t)

	// the committed row is already in the ledger under the returned id
	g, err := l.AddGoal(Goal{Name: "Food", Target: 30000}, func(Goal) (int64, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.ID)
	assert.Equal(t, int64(18500), g.Current)
	assert.Len(t, l.Goals(), 3)
}

func TestConcurrentOperationsKeepBalanceConsistent(t *testing.T) {
	l, err := NewWithBalance(10000, []Goal{{ID: 1, Name: "Food", Target: 30000}})
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(3 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = l.Deposit(100, MethodBank)
		}()
		go func() {
			defer wg.Done()
			_, _ = l.Withdraw(100)
		}()
		go func() {
			defer wg.Done()
			_, _ = l.Contribute(1, 30)
		}()
	}
	wg.Wait()

	var sum int64
	var contributed int64
	ids := make(map[int64]bool)
	for _, tx := range l.History() {
		sum += tx.Effect()
		if tx.Kind == KindGoalContribution {
			contributed += tx.Amount
		}
		assert.False(t, ids[tx.ID], "duplicate transaction id %d", tx.ID)
		ids[tx.ID] = true
	}

	assert.GreaterOrEqual(t, l.Balance(), int64(0))
	assert.Equal(t, int64(10000)+sum, l.Balance())
	g, _ := l.Goal(1)
	assert.Equal(t, contributed, g.Current)
}
