package engine

import (
	"math"

	"github.com/roach88/idlecore/internal/config"
	"github.com/roach88/idlecore/internal/game"
)

// prestigeState is permanent meta-progress. points never decreases.
type prestigeState struct {
	points   float64
	resets   int
	lifetime float64
}

// runStats is progress since the last prestige.
type runStats struct {
	produced game.Bundle
}

// Multiplier is the permanent production factor for the current total.
func (p *prestigeState) Multiplier(cfg config.PrestigeConfig) float64 {
	return 1 + p.points*cfg.BonusPerPoint
}

// award computes the points a prestige would grant for metric. For the
// lifetime basis it also returns the accumulated metric to store.
func (p *prestigeState) award(cfg config.PrestigeConfig, metric float64) (gain, lifetime float64) {
	if !(metric > 0) || math.IsInf(metric, 0) {
		metric = 0
	}
	curve := func(x float64) float64 {
		return math.Floor(math.Pow(x/cfg.Divisor, cfg.Exponent))
	}

	switch cfg.Basis {
	case config.BasisLifetime:
		lifetime = p.lifetime + metric
		return math.Max(curve(lifetime)-p.points, 0), lifetime
	default:
		return curve(metric), p.lifetime + metric
	}
}

// metric returns the progress figure the award is computed from.
func (e *Engine) prestigeMetric() float64 {
	switch e.cfg.Prestige.Metric {
	case config.MetricProduced:
		return e.run.produced.Total()
	default:
		return e.ledger.Get(game.Gold)
	}
}

// PrestigePreview returns the points Prestige would award now.
func (e *Engine) PrestigePreview() float64 {
	gain, _ := e.prestige.award(e.cfg.Prestige, e.prestigeMetric())
	return gain
}

// Prestige converts current-run progress into permanent points, then
// resets the ledger, buildings, upgrades and run statistics. Researched
// techs, achievements and the clock baseline are kept. It returns the
// points awarded, which may be zero.
func (e *Engine) Prestige() float64 {
	gain, lifetime := e.prestige.award(e.cfg.Prestige, e.prestigeMetric())

	e.prestige.points += gain
	e.prestige.lifetime = lifetime
	e.prestige.resets++

	e.ledger.Reset(e.cfg.StartingBundle())
	e.registry.Reset()
	e.upgrades.Reset()
	e.run = runStats{}

	e.emit(EventPrestige, "Prestiged for %g points (total %g)", gain, e.prestige.points)
	e.logger.Info("prestige",
		"gain", gain,
		"points", e.prestige.points,
		"resets", e.prestige.resets,
	)
	return gain
}

// PrestigePoints returns the accumulated prestige total.
func (e *Engine) PrestigePoints() float64 {
	return e.prestige.points
}

// PrestigeMultiplier returns the permanent production multiplier.
func (e *Engine) PrestigeMultiplier() float64 {
	return e.prestige.Multiplier(e.cfg.Prestige)
}

// PrestigeResets returns how many times Prestige has been called.
func (e *Engine) PrestigeResets() int {
	return e.prestige.resets
}
