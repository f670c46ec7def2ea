// Package config holds the tunable parameters of the simulation core and
// loads them from CUE files.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/idlecore/internal/game"
)

// Prestige award metrics.
const (
	MetricGold     = "gold"
	MetricProduced = "produced"
)

// Prestige award bases.
const (
	BasisRun      = "run"
	BasisLifetime = "lifetime"
)

// Config parameterises an engine. Durations are in seconds.
type Config struct {
	TickRate     float64 `json:"tick_rate"`
	MinTickRate  float64 `json:"min_tick_rate"`
	MaxTickRate  float64 `json:"max_tick_rate"`
	MaxCatchUp   float64 `json:"max_catch_up"`
	LogCapacity  int     `json:"log_capacity"`
	GatherAmount float64 `json:"gather_amount"`

	// StartingResources seeds the ledger on creation and after every
	// prestige. Empty means all zero.
	StartingResources map[string]float64 `json:"starting_resources,omitempty"`

	Prestige PrestigeConfig `json:"prestige"`
	Hazards  HazardConfig   `json:"hazards"`
}

// PrestigeConfig selects the award function.
//
// With basis "run" the award is floor((metric/Divisor)^Exponent). With basis
// "lifetime" the metric accumulates across runs and the award is whatever
// brings the total up to floor((lifetime/Divisor)^Exponent).
type PrestigeConfig struct {
	Metric        string  `json:"metric"`
	Basis         string  `json:"basis"`
	Divisor       float64 `json:"divisor"`
	Exponent      float64 `json:"exponent"`
	BonusPerPoint float64 `json:"bonus_per_point"`
}

// HazardConfig controls random events. Chance is per step. Default leaves
// hazards off, so buildings are only ever lost by prestige; set chance to
// 0.05 for the classic storm rate.
type HazardConfig struct {
	Chance float64 `json:"chance"`
	Seed   uint64  `json:"seed"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		TickRate:     1,
		MinTickRate:  0.05,
		MaxTickRate:  60,
		MaxCatchUp:   8 * 60 * 60,
		LogCapacity:  100,
		GatherAmount: 1,
		Prestige: PrestigeConfig{
			Metric:        MetricGold,
			Basis:         BasisRun,
			Divisor:       1e6,
			Exponent:      0.5,
			BonusPerPoint: 0.05,
		},
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be positive and finite, got %v", name, v))
		}
	}
	positive("tick_rate", c.TickRate)
	positive("min_tick_rate", c.MinTickRate)
	positive("max_tick_rate", c.MaxTickRate)
	positive("max_catch_up", c.MaxCatchUp)
	positive("gather_amount", c.GatherAmount)
	positive("prestige.divisor", c.Prestige.Divisor)

	if c.MinTickRate > c.MaxTickRate {
		errs = append(errs, fmt.Errorf("min_tick_rate %v exceeds max_tick_rate %v", c.MinTickRate, c.MaxTickRate))
	}
	if c.TickRate < c.MinTickRate || c.TickRate > c.MaxTickRate {
		errs = append(errs, fmt.Errorf("tick_rate %v outside [%v, %v]", c.TickRate, c.MinTickRate, c.MaxTickRate))
	}
	if c.LogCapacity < 1 {
		errs = append(errs, fmt.Errorf("log_capacity must be at least 1, got %d", c.LogCapacity))
	}
	for id, v := range c.StartingResources {
		if _, ok := game.ParseResource(id); !ok {
			errs = append(errs, fmt.Errorf("starting_resources: unknown resource %q", id))
		}
		if !(v >= 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("starting_resources.%s must be non-negative and finite, got %v", id, v))
		}
	}

	switch c.Prestige.Metric {
	case MetricGold, MetricProduced:
	default:
		errs = append(errs, fmt.Errorf("prestige.metric: unknown metric %q", c.Prestige.Metric))
	}
	switch c.Prestige.Basis {
	case BasisRun, BasisLifetime:
	default:
		errs = append(errs, fmt.Errorf("prestige.basis: unknown basis %q", c.Prestige.Basis))
	}
	if !(c.Prestige.Exponent > 0 && c.Prestige.Exponent <= 1) {
		errs = append(errs, fmt.Errorf("prestige.exponent must be in (0, 1], got %v", c.Prestige.Exponent))
	}
	if !(c.Prestige.BonusPerPoint >= 0) || math.IsInf(c.Prestige.BonusPerPoint, 0) {
		errs = append(errs, fmt.Errorf("prestige.bonus_per_point must be non-negative, got %v", c.Prestige.BonusPerPoint))
	}
	if !(c.Hazards.Chance >= 0 && c.Hazards.Chance <= 1) {
		errs = append(errs, fmt.Errorf("hazards.chance must be in [0, 1], got %v", c.Hazards.Chance))
	}
	return errors.Join(errs...)
}

// StartingBundle returns StartingResources as a Bundle. Unknown ids are
// ignored; Validate reports them.
func (c Config) StartingBundle() game.Bundle {
	b, _ := game.BundleFromMap(c.StartingResources)
	return b.Positive()
}

// ClampTickRate brings a positive rate into [MinTickRate, MaxTickRate].
func (c Config) ClampTickRate(rate float64) float64 {
	return math.Min(math.Max(rate, c.MinTickRate), c.MaxTickRate)
}
