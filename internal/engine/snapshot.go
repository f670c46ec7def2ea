package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/idlecore/internal/codec"
	"github.com/roach88/idlecore/internal/game"
)

// Snapshot returns the persisted form of the engine. The event log and
// derived rates are not part of it.
func (e *Engine) Snapshot() codec.State {
	s := codec.State{
		Version:      codec.Version,
		Resources:    e.ledger.amounts.Map(),
		Buildings:    make(map[string]float64),
		Techs:        make([]string, 0, len(e.techs.order)),
		Achievements: make([]string, 0, len(e.achievements.order)),
		Upgrades:     make(map[string]float64),
		Prestige: codec.PrestigeState{
			Points:   e.prestige.points,
			Resets:   e.prestige.resets,
			Lifetime: e.prestige.lifetime,
		},
		Run:      codec.RunState{Produced: e.run.produced.Map()},
		TickRate: e.tickRate,
		Clock: codec.ClockState{
			Started: e.sim.Started(),
			Last:    e.sim.Last(),
			Carry:   e.sim.Carry(),
		},
		Hazards: codec.HazardState{RNG: e.hazards.state()},
	}
	for _, b := range game.Buildings() {
		if n := e.registry.Count(b); n > 0 {
			s.Buildings[b.String()] = float64(n)
		}
	}
	for _, t := range e.techs.order {
		s.Techs = append(s.Techs, t.String())
	}
	for _, a := range e.achievements.order {
		s.Achievements = append(s.Achievements, a.String())
	}
	for _, u := range game.Upgrades() {
		if n := e.upgrades.Level(u); n > 0 {
			s.Upgrades[u.String()] = float64(n)
		}
	}
	return s
}

// Save encodes the engine into an opaque blob.
func (e *Engine) Save() (string, error) {
	return codec.Encode(e.Snapshot())
}

// Load replaces the engine state with the one encoded in blob. On error
// nothing changes. Unknown identifiers are skipped, missing fields take
// their initial values and out-of-range numbers are repaired.
func (e *Engine) Load(blob string) error {
	s, err := codec.Decode(blob)
	if err != nil {
		e.logger.Warn("load failed", "error", err)
		return fmt.Errorf("load: %w", err)
	}
	skipped := e.Restore(s)
	e.emit(EventLoaded, "Game loaded")
	e.logger.Info("load",
		"version", s.Version,
		"points", e.prestige.points,
		"skipped", skipped,
	)
	return nil
}

// Restore replaces the engine state with s and returns the identifiers it
// did not recognise. The event log and its sequence numbers are kept.
func (e *Engine) Restore(s codec.State) []string {
	var skipped []string

	var l ledger
	amounts, unknown := game.BundleFromMap(s.Resources)
	skipped = append(skipped, unknown...)
	for _, r := range game.Resources() {
		l.ApplyDelta(r, finite(amounts[r]))
	}

	var reg registry
	for id, n := range s.Buildings {
		b, ok := game.ParseBuilding(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		reg.counts[b] = wholeCount(n)
	}

	var techs techTree
	for _, id := range s.Techs {
		t, ok := game.ParseTech(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		techs.unlock(t)
	}

	var ach achievementSet
	for _, id := range s.Achievements {
		a, ok := game.ParseAchievement(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		ach.unlock(a)
	}

	var ups upgradeSet
	for id, n := range s.Upgrades {
		u, ok := game.ParseUpgrade(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		ups.levels[u] = wholeCount(n)
	}

	produced, unknown := game.BundleFromMap(s.Run.Produced)
	skipped = append(skipped, unknown...)
	var run runStats
	for _, r := range game.Resources() {
		run.produced[r] = finite(produced[r])
	}

	rate := e.cfg.TickRate
	if s.TickRate > 0 && !math.IsInf(s.TickRate, 0) {
		rate = e.cfg.ClampTickRate(s.TickRate)
	}

	sim := NewSimClock(e.cfg.MaxCatchUp)
	sim.restore(s.Clock.Started, s.Clock.Last, s.Clock.Carry)

	hz := newHazards(e.cfg.Hazards.Chance, e.cfg.Hazards.Seed)
	hz.restore(s.Hazards.RNG)

	e.ledger = l
	e.registry = reg
	e.techs = techs
	e.achievements = ach
	e.upgrades = ups
	e.run = run
	e.prestige = prestigeState{
		points:   math.Floor(finite(s.Prestige.Points)),
		resets:   max(s.Prestige.Resets, 0),
		lifetime: finite(s.Prestige.Lifetime),
	}
	e.tickRate = rate
	e.sim = sim
	e.hazards = hz

	sort.Strings(skipped)
	return skipped
}

// finite maps negative and non-finite values to zero.
func finite(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func wholeCount(v float64) int {
	v = math.Floor(finite(v))
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
