package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Goal is a named savings target. Current may exceed Target; only the
// displayed percentage saturates.
type Goal struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Target    int64  `json:"target"`
	Current   int64  `json:"current"`
	Frequency string `json:"frequency"`
}

func (g Goal) validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name can't be empty")
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: goal '%s' has target %d", ErrInvalidTarget, g.Name, g.Target)
	}
	if g.Current < 0 {
		return fmt.Errorf("%w: goal '%s' has negative progress %d", ErrInvalidAmount, g.Name, g.Current)
	}
	return nil
}

// Progress returns the display percentage of the goal, 0..100.
func (g Goal) Progress() int {
	p, err := ProgressPercentage(g.Current, g.Target)
	if err != nil {
		return 0
	}
	return p
}

// Remaining is what is left to reach the target, never negative.
func (g Goal) Remaining() int64 {
	if g.Current >= g.Target {
		return 0
	}
	return g.Target - g.Current
}

var hundred = decimal.NewFromInt(100)

// ProgressPercentage computes round(min(current/target*100, 100)) with halves
// rounded up, using exact decimal arithmetic.
func ProgressPercentage(current, target int64) (int, error) {
	if target <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if current <= 0 {
		return 0, nil
	}
	if current >= target {
		return 100, nil
	}

	pct := decimal.NewFromInt(current).Mul(hundred).DivRound(decimal.NewFromInt(target), 0).IntPart()
	if pct > 100 {
		pct = 100
	}
	return int(pct), nil
}
