package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idlecore/internal/config"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
name: test_scenario
description: "Test scenario for validation"
config:
  tick_rate: 2
steps:
  - op: gather
    arg: wood
    times: 3
    expect: true
  - op: tick
    advance: 4
assertions:
  - type: resource
    id: wood
    equals: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, OpGather, scenario.Steps[0].Op)
	assert.Equal(t, 3, scenario.Steps[0].Times)
	require.NotNil(t, scenario.Steps[0].Expect)
	assert.True(t, *scenario.Steps[0].Expect)
	assert.Equal(t, 4.0, scenario.Steps[1].Advance)
	require.Len(t, scenario.Assertions, 1)
	require.NotNil(t, scenario.Assertions[0].Equals)
	assert.Equal(t, 3.0, *scenario.Assertions[0].Equals)

	cfg, err := scenario.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.TickRate)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "misspelt assertions"
steps:
  - op: tick
assertion:
  - type: achievements
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nsteps: [{op: tick}]\nassertions: [{type: achievements}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nsteps: [{op: tick}]\nassertions: [{type: achievements}]",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: n\ndescription: d\nassertions: [{type: achievements}]",
			want: "steps list is required",
		},
		{
			name: "no assertions",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick}]",
			want: "assertions list is required",
		},
		{
			name: "unknown op",
			yaml: "name: n\ndescription: d\nsteps: [{op: demolish, arg: farm}]\nassertions: [{type: achievements}]",
			want: `unknown op "demolish"`,
		},
		{
			name: "build without arg",
			yaml: "name: n\ndescription: d\nsteps: [{op: build}]\nassertions: [{type: achievements}]",
			want: "build requires arg",
		},
		{
			name: "tick with expect",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick, expect: true}]\nassertions: [{type: achievements}]",
			want: "tick has no outcome",
		},
		{
			name: "negative advance",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick, advance: -1}]\nassertions: [{type: achievements}]",
			want: "must not be negative",
		},
		{
			name: "resource without equals",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick}]\nassertions: [{type: resource, id: wood}]",
			want: "resource requires equals",
		},
		{
			name: "log_order without messages",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick}]\nassertions: [{type: log_order}]",
			want: "log_order requires messages",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\nsteps: [{op: tick}]\nassertions: [{type: final_state}]",
			want: `unknown assertion type "final_state"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEngineConfig_DefaultWithoutOverrides(t *testing.T) {
	s := &Scenario{Name: "plain"}
	cfg, err := s.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestEngineConfig_RejectsOutOfRange(t *testing.T) {
	s := &Scenario{Name: "bad", Config: map[string]any{"tick_rate": -1}}
	_, err := s.EngineConfig()
	assert.Error(t, err)
}
