package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun_TickIntegratesWholeSteps(t *testing.T) {
	s := mustParse(t, `
name: ticks
description: "five seconds at one second per step"
config:
  starting_resources: { wood: 10 }
start: 1000
steps:
  - op: tick
  - op: build
    arg: farm
    expect: true
  - op: tick
    advance: 5
assertions:
  - type: resource
    id: food
    equals: 5
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, 1000.0, result.Trace[0].At)
	assert.Equal(t, 0, result.Trace[0].Steps)
	assert.Equal(t, 1005.0, result.Trace[2].At)
	assert.Equal(t, 5, result.Trace[2].Steps)
	assert.Equal(t, []string{"Built Farm"}, result.Trace[1].Messages)
}

func TestRun_SequenceNumbersIncrease(t *testing.T) {
	s := mustParse(t, `
name: seqs
description: "one trace entry per step"
steps:
  - op: gather
    arg: wood
  - op: gather
    arg: stone
  - op: tick
assertions:
  - type: resource
    id: wood
    equals: 1
`)
	result, err := Run(s)
	require.NoError(t, err)
	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	s := mustParse(t, `
name: broke
description: "a farm cannot be built from nothing"
steps:
  - op: build
    arg: farm
    expect: true
assertions:
  - type: count
    id: farm
    equals: 0
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "step 0 (build farm): expected true, got false")
	require.NotNil(t, result.Trace[0].OK)
	assert.False(t, *result.Trace[0].OK)
}

func TestRun_RepeatFailsIfAnyRepetitionFails(t *testing.T) {
	s := mustParse(t, `
name: repeat
description: "the second farm costs more than is left"
config:
  starting_resources: { wood: 15 }
steps:
  - op: build
    arg: farm
    times: 2
assertions:
  - type: count
    id: farm
    equals: 1
  - type: resource
    id: wood
    equals: 5
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.NotNil(t, result.Trace[0].OK)
	assert.False(t, *result.Trace[0].OK)
	assert.Equal(t, 2, result.Trace[0].Times)
}

func TestRun_FailedAssertionReported(t *testing.T) {
	s := mustParse(t, `
name: wrong
description: "asserts the wrong amount"
steps:
  - op: gather
    arg: food
assertions:
  - type: resource
    id: food
    equals: 2
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Expected: food = 2")
	assert.Contains(t, result.Errors[0], "Actual: food = 1")
}

func TestRun_InvalidConfig(t *testing.T) {
	s := &Scenario{
		Name:       "bad_config",
		Config:     map[string]any{"log_capacity": 0},
		Steps:      []Step{{Op: OpTick}},
		Assertions: []Assertion{{Type: AssertAchievements}},
	}
	_, err := Run(s)
	assert.Error(t, err)
}

func TestRun_UnvalidatedStepRejected(t *testing.T) {
	s := &Scenario{
		Name:       "raw",
		Steps:      []Step{{Op: "explode"}},
		Assertions: []Assertion{{Type: AssertAchievements}},
	}
	_, err := Run(s)
	assert.Error(t, err)
}

func TestRun_FinalSnapshot(t *testing.T) {
	s := mustParse(t, `
name: final
description: "final snapshot reflects the game"
steps:
  - op: gather
    arg: stone
    times: 2
assertions:
  - type: resource
    id: stone
    equals: 2
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"stone": 2}, result.Final["resources"])
	assert.Equal(t, 1.0, result.Final["tick_rate"])
}

func TestRun_ExampleScenariosPass(t *testing.T) {
	files, err := Discover(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestResultMessagesFlatten(t *testing.T) {
	r := NewResult()
	r.Trace = []TraceEvent{
		{Seq: 1, Op: OpBuild, OK: ptr(true), Messages: []string{"a"}},
		{Seq: 2, Op: OpTick},
		{Seq: 3, Op: OpTick, Messages: []string{"b", "c"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.Messages())
}
