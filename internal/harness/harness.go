package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/idlecore/internal/api"
	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/testutil"
)

// Harness executes scenario steps against one game.
type Harness struct {
	game   *api.Game
	clock  *testutil.ManualClock
	seq    *engine.Clock
	logger *slog.Logger
}

// Option configures a harness run.
type Option func(*Harness)

// WithLogger routes engine and harness logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh game whose host clock only moves when
// a tick step says so, so results are reproducible. The returned error is
// for scenarios that cannot run at all; failed expectations are reported
// in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		clock:  testutil.NewManualClock(scenario.Start),
		seq:    engine.NewClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	cfg, err := scenario.EngineConfig()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	g, err := api.NewWithConfig(cfg, engine.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	h.game = g

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := validateStep(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		h.execute(i, step, result)
	}

	result.Final = api.SnapshotMap(g.Engine().Status())
	for _, msg := range EvaluateAssertions(result, g, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// execute runs one step, records it and checks its expectation.
func (h *Harness) execute(index int, step Step, result *Result) {
	ev := TraceEvent{Seq: h.seq.Next(), Op: step.Op, Arg: step.Arg}
	times := max(step.Times, 1)
	if times > 1 {
		ev.Times = times
	}

	switch step.Op {
	case OpTick:
		now := h.clock.Advance(step.Advance)
		ev.At = now
		for range times {
			ev.Steps += h.game.Engine().Tick(now)
		}
	case OpPrestige:
		for range times {
			h.game.Prestige()
		}
	default:
		if step.Op == OpSetTickRate {
			ev.Rate = step.Rate
		}
		ok := true
		for range times {
			if !h.apply(step) {
				ok = false
			}
		}
		ev.OK = &ok
		if step.Expect != nil && *step.Expect != ok {
			result.AddError(fmt.Sprintf("step %d (%s %s): expected %t, got %t", index, step.Op, step.Arg, *step.Expect, ok))
		}
	}

	for {
		msg, ok := h.game.PopLog()
		if !ok {
			break
		}
		ev.Messages = append(ev.Messages, msg)
	}
	result.Trace = append(result.Trace, ev)

	h.logger.Debug("scenario step",
		"step", index,
		"op", step.Op,
		"arg", step.Arg,
		"messages", len(ev.Messages),
	)
}

// apply performs one repetition of an operation that reports an outcome.
func (h *Harness) apply(step Step) bool {
	switch step.Op {
	case OpBuild:
		return h.game.Build(step.Arg)
	case OpResearch:
		return h.game.Research(step.Arg)
	case OpUpgrade:
		return h.game.Upgrade(step.Arg)
	case OpGather:
		return h.game.Gather(step.Arg)
	case OpSetTickRate:
		return h.game.SetTickRate(step.Rate)
	case OpSaveLoad:
		blob := h.game.Save()
		return blob != "" && h.game.Load(blob)
	case OpLoad:
		return h.game.Load(step.Arg)
	}
	return false
}
