package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/idlecore/internal/config"
	"github.com/roach88/idlecore/internal/game"
)

// Engine is the aggregate simulation state. See the package documentation
// for the step model.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
	seq    *Clock

	ledger       ledger
	registry     registry
	techs        techTree
	upgrades     upgradeSet
	achievements achievementSet
	prestige     prestigeState
	run          runStats

	log      *eventLog
	sim      SimClock
	tickRate float64
	hazards  *hazards
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Logger returns the engine's structured logger so hosts wrapping the
// engine log to the same place.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// WithClock resumes event sequence numbers from c.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.seq = c
		}
	}
}

// New creates an engine in its initial state: resources at the configured
// starting amounts (zero by default), no buildings, nothing researched or
// unlocked, no prestige.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seq:      NewClock(),
		log:      newEventLog(cfg.LogCapacity),
		sim:      NewSimClock(cfg.MaxCatchUp),
		tickRate: cfg.TickRate,
		hazards:  newHazards(cfg.Hazards.Chance, cfg.Hazards.Seed),
	}
	e.ledger.Reset(cfg.StartingBundle())

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Tick advances the simulation to now (seconds since the epoch) and
// returns the number of fixed steps integrated. The first call only sets
// the baseline.
func (e *Engine) Tick(now float64) int {
	steps := e.sim.Advance(now, e.tickRate)
	for range steps {
		e.step(e.tickRate)
	}
	if steps > 0 {
		e.logger.Debug("tick", "now", now, "steps", steps, "carry", e.sim.Carry())
	}
	return steps
}

// Build constructs one unit of b, debiting its cost.
func (e *Engine) Build(b game.Building) error {
	if !b.Valid() {
		return e.rejected("build", reject(ErrCodeUnknownID, b.String(), "unknown building"))
	}
	def := b.Def()
	if !e.techs.Permits(b) {
		return e.rejected("build", reject(ErrCodeLocked, def.ID, "requires %s", def.Requires.Def().Title))
	}
	cost := e.registry.NextCost(b)
	if !e.ledger.Debit(cost) {
		r, missing := e.ledger.shortfall(cost)
		return e.rejected("build", reject(ErrCodeInsufficient, def.ID, "short %g %s", missing, r))
	}
	e.registry.add(b, 1)
	e.emit(EventBuilt, "Built %s", def.Title)
	return nil
}

// BuildingCost returns the cost of the next unit of b.
func (e *Engine) BuildingCost(b game.Building) game.Bundle {
	if !b.Valid() {
		return game.Bundle{}
	}
	return e.registry.NextCost(b)
}

// BuildingCount returns how many units of b are owned.
func (e *Engine) BuildingCount(b game.Building) int {
	if !b.Valid() {
		return 0
	}
	return e.registry.Count(b)
}

// Unlocked reports whether b may be built.
func (e *Engine) Unlocked(b game.Building) bool {
	return b.Valid() && e.techs.Permits(b)
}

// CanResearch returns nil if t can be researched now, or the rejection
// Research would return.
func (e *Engine) CanResearch(t game.Tech) error {
	if !t.Valid() {
		return reject(ErrCodeUnknownID, t.String(), "unknown tech")
	}
	return e.techs.check(t, e.ledger.Get(game.Science))
}

// Research unlocks t, debiting its science cost. A tech can be researched
// at most once.
func (e *Engine) Research(t game.Tech) error {
	if err := e.CanResearch(t); err != nil {
		return e.rejected("research", err)
	}
	def := t.Def()
	e.ledger.ApplyDelta(game.Science, -def.Cost)
	e.techs.unlock(t)
	e.emit(EventResearched, "Researched %s", def.Title)
	return nil
}

// Researched reports whether t is unlocked.
func (e *Engine) Researched(t game.Tech) bool {
	return e.techs.Has(t)
}

// Techs returns researched techs in unlock order.
func (e *Engine) Techs() []game.Tech {
	return e.techs.Unlocked()
}

// Upgrade buys the next level of u.
func (e *Engine) Upgrade(u game.Upgrade) error {
	if !u.Valid() {
		return e.rejected("upgrade", reject(ErrCodeUnknownID, u.String(), "unknown upgrade"))
	}
	def := u.Def()
	cost := e.upgrades.NextCost(u)
	if !e.ledger.Debit(cost) {
		r, missing := e.ledger.shortfall(cost)
		return e.rejected("upgrade", reject(ErrCodeInsufficient, def.ID, "short %g %s", missing, r))
	}
	e.upgrades.levels[u]++
	e.emit(EventUpgraded, "Upgraded %s to level %d", def.Title, e.upgrades.levels[u])
	return nil
}

// UpgradeCost returns the cost of the next level of u.
func (e *Engine) UpgradeCost(u game.Upgrade) game.Bundle {
	if !u.Valid() {
		return game.Bundle{}
	}
	return e.upgrades.NextCost(u)
}

// UpgradeLevel returns the purchased level of u.
func (e *Engine) UpgradeLevel(u game.Upgrade) int {
	if !u.Valid() {
		return 0
	}
	return e.upgrades.Level(u)
}

// Gather adds the configured hand-gathered amount of r.
func (e *Engine) Gather(r game.Resource) error {
	if !r.Valid() {
		return e.rejected("gather", reject(ErrCodeUnknownID, r.String(), "unknown resource"))
	}
	if !r.Gatherable() {
		return e.rejected("gather", reject(ErrCodeLocked, r.String(), "cannot be gathered by hand"))
	}
	e.credit(r, e.cfg.GatherAmount)
	return nil
}

// Resource returns the amount of r held.
func (e *Engine) Resource(r game.Resource) float64 {
	if !r.Valid() {
		return 0
	}
	return e.ledger.Get(r)
}

// Resources returns every amount held.
func (e *Engine) Resources() game.Bundle {
	return e.ledger.amounts
}

// SetTickRate changes the fixed step size for subsequent ticks. Positive
// rates are clamped into the configured bounds.
func (e *Engine) SetTickRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return e.rejected("set tick rate", reject(ErrCodeInvalidTickRate, "", "tick rate must be positive and finite, got %v", rate))
	}
	e.tickRate = e.cfg.ClampTickRate(rate)
	return nil
}

// TickRate returns the fixed step size in seconds.
func (e *Engine) TickRate() float64 {
	return e.tickRate
}

// PopLog removes and returns the oldest pending event.
func (e *Engine) PopLog() (Event, bool) {
	return e.log.TryPop()
}

// PendingEvents returns the number of undrained events.
func (e *Engine) PendingEvents() int {
	return e.log.Len()
}

// Achievements returns unlocked achievements in unlock order.
func (e *Engine) Achievements() []game.Achievement {
	return e.achievements.Unlocked()
}

// HasAchievement reports whether a is unlocked.
func (e *Engine) HasAchievement(a game.Achievement) bool {
	return e.achievements.Has(a)
}

// Seq returns the sequence number of the most recent event.
func (e *Engine) Seq() int64 {
	return e.seq.Current()
}

func (e *Engine) emit(kind EventKind, format string, args ...any) {
	ev := Event{Seq: e.seq.Next(), Kind: kind, Message: fmt.Sprintf(format, args...)}
	if e.log.Push(ev) {
		e.logger.Debug("event log full, oldest evicted", "capacity", e.log.Cap())
	}
}

func (e *Engine) rejected(op string, err error) error {
	e.logger.Debug(op+" rejected", "reason", RejectionCodeOf(err), "error", err)
	return err
}
