package engine

import (
	"math"

	"github.com/roach88/idlecore/internal/game"
)

// upgradeSet holds purchased upgrade levels for the current run.
type upgradeSet struct {
	levels [game.UpgradeCount]int
}

func (u *upgradeSet) Level(id game.Upgrade) int {
	return u.levels[id]
}

func (u *upgradeSet) NextCost(id game.Upgrade) game.Bundle {
	return id.CostAt(u.levels[id])
}

// Multiplier is the combined upgrade factor on production of r.
func (u *upgradeSet) Multiplier(r game.Resource) float64 {
	m := 1.0
	for _, id := range game.Upgrades() {
		if u.levels[id] > 0 && id.Applies(r) {
			m *= math.Pow(id.Def().Factor, float64(u.levels[id]))
		}
	}
	return m
}

func (u *upgradeSet) Reset() {
	u.levels = [game.UpgradeCount]int{}
}
