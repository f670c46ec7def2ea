package engine

import (
	"math"

	"github.com/roach88/idlecore/internal/game"
)

// ledger holds resource amounts. No mutation path can leave an amount
// negative or non-finite.
type ledger struct {
	amounts game.Bundle
}

func (l *ledger) Get(r game.Resource) float64 {
	return l.amounts[r]
}

// ApplyDelta adds d to r, flooring the result at zero. It returns the
// change actually applied. Each resource is clamped independently, so a
// consuming flow that exceeds the stock is truncated without affecting
// other resources.
func (l *ledger) ApplyDelta(r game.Resource, d float64) float64 {
	if math.IsNaN(d) || d == 0 {
		return 0
	}
	before := l.amounts[r]
	after := before + d
	if !(after > 0) {
		after = 0
	}
	if math.IsInf(after, 1) {
		after = math.MaxFloat64
	}
	l.amounts[r] = after
	return after - before
}

// CanAfford reports whether every amount in cost is available.
func (l *ledger) CanAfford(cost game.Bundle) bool {
	return l.amounts.Covers(cost)
}

// Debit subtracts cost if and only if the whole cost is affordable.
func (l *ledger) Debit(cost game.Bundle) bool {
	if !l.CanAfford(cost) {
		return false
	}
	for _, r := range game.Resources() {
		l.ApplyDelta(r, -cost[r])
	}
	return true
}

// Reset replaces every amount with start, floored at zero.
func (l *ledger) Reset(start game.Bundle) {
	l.amounts = game.Bundle{}
	for _, r := range game.Resources() {
		l.ApplyDelta(r, start[r])
	}
}

// shortfall returns the first resource cost exceeds, for diagnostics.
func (l *ledger) shortfall(cost game.Bundle) (game.Resource, float64) {
	for _, r := range game.Resources() {
		if l.amounts[r] < cost[r] {
			return r, cost[r] - l.amounts[r]
		}
	}
	return 0, 0
}
