package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idlecore/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.TickRate = 0
	cfg.LogCapacity = 0
	cfg.Prestige.Metric = "fame"
	cfg.StartingResources = map[string]float64{"coal": 1, "wood": -1}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "tick_rate")
	assert.Contains(t, msg, "log_capacity")
	assert.Contains(t, msg, "fame")
	assert.Contains(t, msg, `unknown resource "coal"`)
	assert.Contains(t, msg, "starting_resources.wood")
}

func TestValidateRejectsNonFinite(t *testing.T) {
	cfg := Default()
	cfg.MaxCatchUp = math.Inf(1)
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Hazards.Chance = math.NaN()
	assert.Error(t, cfg.Validate())
}

func TestClampTickRate(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.05, cfg.ClampTickRate(0.001))
	assert.Equal(t, 60.0, cfg.ClampTickRate(3600))
	assert.Equal(t, 2.5, cfg.ClampTickRate(2.5))
}

func TestStartingBundle(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.StartingBundle().IsZero())

	cfg.StartingResources = map[string]float64{"wood": 25, "food": 5}
	b := cfg.StartingBundle()
	assert.Equal(t, 25.0, b.Get(game.Wood))
	assert.Equal(t, 5.0, b.Get(game.Food))
}

func TestParseEmptyYieldsDefault(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.cue")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverrides(t *testing.T) {
	src := `
tick_rate: 0.5
log_capacity: 16
starting_resources: wood: 30
prestige: {
	basis: "lifetime"
	divisor: 1000
}
hazards: {
	chance: 0.1
	seed: 42
}
`
	cfg, err := Parse([]byte(src), "game.cue")
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.TickRate)
	assert.Equal(t, 16, cfg.LogCapacity)
	assert.Equal(t, map[string]float64{"wood": 30}, cfg.StartingResources)
	assert.Equal(t, BasisLifetime, cfg.Prestige.Basis)
	assert.Equal(t, MetricGold, cfg.Prestige.Metric)
	assert.Equal(t, 1000.0, cfg.Prestige.Divisor)
	assert.Equal(t, 0.5, cfg.Prestige.Exponent)
	assert.Equal(t, 0.1, cfg.Hazards.Chance)
	assert.Equal(t, uint64(42), cfg.Hazards.Seed)
	assert.Equal(t, 60.0, cfg.MaxTickRate)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"negative tick rate", "tick_rate: -1"},
		{"unknown field", "speed: 3"},
		{"unknown metric", `prestige: metric: "fame"`},
		{"chance above one", "hazards: chance: 2"},
		{"syntax", "tick_rate: {"},
		{"unknown resource", "starting_resources: coal: 3"},
		{"tick rate above max", "tick_rate: 90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idle.cue")
	require.NoError(t, os.WriteFile(path, []byte("gather_amount: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.GatherAmount)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}

func TestDefaultHazardsOff(t *testing.T) {
	assert.Zero(t, Default().Hazards.Chance)

	cfg, err := Parse([]byte("hazards: chance: 0.05"), "classic.cue")
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Hazards.Chance)
	assert.Equal(t, Default().TickRate, cfg.TickRate)
}
