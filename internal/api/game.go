// Package api is the string-keyed operation surface hosts call.
//
// Identifiers are parsed into the closed enumerations exactly once, here.
// Structured results (cost tables, achievement lists, snapshots) are
// returned as canonical JSON strings; inside the engine they stay typed.
// Rejections become false; unknown identifiers read as zero.
package api

import (
	"log/slog"

	"github.com/roach88/idlecore/internal/canon"
	"github.com/roach88/idlecore/internal/config"
	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/game"
)

// Game wraps one Engine. Like the engine it is not safe for concurrent use.
type Game struct {
	eng    *engine.Engine
	logger *slog.Logger
}

// New returns a game with the default configuration.
func New(opts ...engine.Option) *Game {
	g, err := NewWithConfig(config.Default(), opts...)
	if err != nil {
		// The default configuration always validates.
		panic(err)
	}
	return g
}

// NewWithConfig returns a game using cfg.
func NewWithConfig(cfg config.Config, opts ...engine.Option) (*Game, error) {
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Game{eng: eng, logger: eng.Logger()}, nil
}

// Engine exposes the typed engine for hosts that want structured reads.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Tick advances the simulation to now, in seconds since the epoch.
func (g *Game) Tick(now float64) {
	g.eng.Tick(now)
}

// Build reports whether one unit of the named building was constructed.
func (g *Game) Build(name string) bool {
	b, ok := game.ParseBuilding(name)
	if !ok {
		return false
	}
	return g.eng.Build(b) == nil
}

// Research reports whether the named tech was researched.
func (g *Game) Research(name string) bool {
	t, ok := game.ParseTech(name)
	if !ok {
		return false
	}
	return g.eng.Research(t) == nil
}

// CanResearch reports whether Research would succeed now.
func (g *Game) CanResearch(name string) bool {
	t, ok := game.ParseTech(name)
	return ok && g.eng.CanResearch(t) == nil
}

// TechUnlocked reports whether the named tech is researched.
func (g *Game) TechUnlocked(name string) bool {
	t, ok := game.ParseTech(name)
	return ok && g.eng.Researched(t)
}

// Upgrade reports whether the next level of the named upgrade was bought.
func (g *Game) Upgrade(name string) bool {
	u, ok := game.ParseUpgrade(name)
	if !ok {
		return false
	}
	return g.eng.Upgrade(u) == nil
}

// UpgradeLevel returns the purchased level of the named upgrade.
func (g *Game) UpgradeLevel(name string) int {
	u, ok := game.ParseUpgrade(name)
	if !ok {
		return 0
	}
	return g.eng.UpgradeLevel(u)
}

// UpgradeCost returns the next level's cost as a JSON object.
func (g *Game) UpgradeCost(name string) string {
	u, ok := game.ParseUpgrade(name)
	if !ok {
		return "{}"
	}
	return g.bundleJSON(g.eng.UpgradeCost(u))
}

// Gather reports whether the named resource was collected by hand.
func (g *Game) Gather(name string) bool {
	r, ok := game.ParseResource(name)
	if !ok {
		return false
	}
	return g.eng.Gather(r) == nil
}

// GetResource returns the amount held of the named resource.
func (g *Game) GetResource(name string) float64 {
	r, ok := game.ParseResource(name)
	if !ok {
		return 0
	}
	return g.eng.Resource(r)
}

// GetResourceRate returns the net flow of the named resource per second.
func (g *Game) GetResourceRate(name string) float64 {
	r, ok := game.ParseResource(name)
	if !ok {
		return 0
	}
	return g.eng.Rate(r)
}

// BuildingCost returns the next unit's cost as a JSON object keyed by
// resource id, e.g. {"wood":10}.
func (g *Game) BuildingCost(name string) string {
	b, ok := game.ParseBuilding(name)
	if !ok {
		return "{}"
	}
	return g.bundleJSON(g.eng.BuildingCost(b))
}

// BuildingCount returns how many units of the named building are owned.
func (g *Game) BuildingCount(name string) int {
	b, ok := game.ParseBuilding(name)
	if !ok {
		return 0
	}
	return g.eng.BuildingCount(b)
}

// Save returns the opaque state blob, or "" if encoding failed.
func (g *Game) Save() string {
	blob, err := g.eng.Save()
	if err != nil {
		g.logger.Error("save failed", "error", err)
		return ""
	}
	return blob
}

// Load replaces the state with the one in data. On false the state is
// unchanged.
func (g *Game) Load(data string) bool {
	return g.eng.Load(data) == nil
}

// SetTickRate changes the step size in seconds. Non-positive rates are
// rejected with no state change.
func (g *Game) SetTickRate(rate float64) bool {
	return g.eng.SetTickRate(rate) == nil
}

// PopLog removes and returns the oldest pending message. The second result
// is false when the log is empty.
func (g *Game) PopLog() (string, bool) {
	ev, ok := g.eng.PopLog()
	return ev.Message, ok
}

// Achievements returns the unlocked achievement ids as a JSON array, in
// unlock order.
func (g *Game) Achievements() string {
	ids := make([]string, 0, len(g.eng.Achievements()))
	for _, a := range g.eng.Achievements() {
		ids = append(ids, a.String())
	}
	return g.encode(ids, "[]")
}

// Prestige resets the run for permanent points.
func (g *Game) Prestige() {
	g.eng.Prestige()
}

// PrestigePoints returns the accumulated prestige total.
func (g *Game) PrestigePoints() float64 {
	return g.eng.PrestigePoints()
}

// PrestigeMultiplier returns the permanent production multiplier.
func (g *Game) PrestigeMultiplier() float64 {
	return g.eng.PrestigeMultiplier()
}

// Snapshot returns a JSON object describing the whole visible state.
func (g *Game) Snapshot() string {
	return g.encode(SnapshotMap(g.eng.Status()), "{}")
}

func (g *Game) bundleJSON(b game.Bundle) string {
	return g.encode(b.Map(), "{}")
}

func (g *Game) encode(v any, fallback string) string {
	s, err := canon.MarshalString(v)
	if err != nil {
		g.logger.Error("encode boundary value", "error", err)
		return fallback
	}
	return s
}
