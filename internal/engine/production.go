package engine

import "github.com/roach88/idlecore/internal/game"

// rates computes the net per-second flow of every resource:
//
//	Σ_b profile[b][r] × count[b] × tech(b) × tech(r) × upgrades(r) × prestige
//
// Multipliers scale upkeep as well as output.
func (e *Engine) rates() game.Bundle {
	var out game.Bundle
	prestige := e.PrestigeMultiplier()
	for _, b := range game.Buildings() {
		n := e.registry.Count(b)
		if n == 0 {
			continue
		}
		def := b.Def()
		bm := e.techs.BuildingMultiplier(b)
		for _, r := range game.Resources() {
			per := def.Profile[r]
			if per == 0 {
				continue
			}
			out[r] += per * float64(n) * bm * e.techs.ResourceMultiplier(r) * e.upgrades.Multiplier(r) * prestige
		}
	}
	return out
}

// step integrates one fixed step of dt seconds.
func (e *Engine) step(dt float64) {
	flow := e.rates()
	for _, r := range game.Resources() {
		if flow[r] != 0 {
			e.credit(r, flow[r]*dt)
		}
	}

	e.hazards.roll(e)

	for _, a := range e.achievements.Evaluate(view{e}) {
		e.emit(EventAchievement, "Achievement unlocked: %s", a.Def().Title)
	}
}

// credit applies a signed delta to the ledger and records positive
// production for the run.
func (e *Engine) credit(r game.Resource, d float64) {
	if applied := e.ledger.ApplyDelta(r, d); applied > 0 {
		e.run.produced[r] += applied
	}
}

// Rate returns the current net flow of r in units per second. It is
// derived from state and never stored.
func (e *Engine) Rate(r game.Resource) float64 {
	return e.rates()[r]
}

// Rates returns the current net flow of every resource.
func (e *Engine) Rates() game.Bundle {
	return e.rates()
}
