package engine

import "github.com/roach88/idlecore/internal/game"

// Status is a read-only summary for hosts.
type Status struct {
	Resources          game.Bundle
	Rates              game.Bundle
	Buildings          [game.BuildingCount]int
	NextCosts          [game.BuildingCount]game.Bundle
	Techs              []game.Tech
	Achievements       []game.Achievement
	Upgrades           [game.UpgradeCount]int
	PrestigePoints     float64
	PrestigeMultiplier float64
	PrestigeResets     int
	PrestigePreview    float64
	TickRate           float64
	PendingEvents      int
}

// Status summarises the current state.
func (e *Engine) Status() Status {
	s := Status{
		Resources:          e.ledger.amounts,
		Rates:              e.rates(),
		Buildings:          e.registry.counts,
		Techs:              e.techs.Unlocked(),
		Achievements:       e.achievements.Unlocked(),
		Upgrades:           e.upgrades.levels,
		PrestigePoints:     e.prestige.points,
		PrestigeMultiplier: e.PrestigeMultiplier(),
		PrestigeResets:     e.prestige.resets,
		PrestigePreview:    e.PrestigePreview(),
		TickRate:           e.tickRate,
		PendingEvents:      e.log.Len(),
	}
	for _, b := range game.Buildings() {
		s.NextCosts[b] = e.registry.NextCost(b)
	}
	return s
}
