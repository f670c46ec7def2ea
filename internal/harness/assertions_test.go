package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idlecore/internal/api"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: OpBuild, Arg: "farm", OK: ptr(true), Messages: []string{"Built Farm"}},
		{Seq: 2, Op: OpTick, At: 1, Steps: 1, Messages: []string{"Achievement unlocked: First Farm"}},
		{Seq: 3, Op: OpBuild, Arg: "farm", OK: ptr(true), Messages: []string{"Built Farm"}},
	}
}

func sampleMessages() []string {
	r := &Result{Trace: sampleTrace()}
	return r.Messages()
}

func TestAssertLogContains(t *testing.T) {
	assert.NoError(t, assertLogContains(sampleTrace(), sampleMessages(), Assertion{Type: AssertLogContains, Message: "Built Farm"}))

	err := assertLogContains(sampleTrace(), sampleMessages(), Assertion{Type: AssertLogContains, Message: "Built Lab"})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "not found in log", ae.Actual)
}

func TestAssertLogOrder(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		wantErr  bool
	}{
		{"in order", []string{"Built Farm", "Achievement unlocked: First Farm"}, false},
		{"intervening allowed", []string{"Built Farm", "Built Farm"}, false},
		{"wrong order", []string{"Achievement unlocked: First Farm", "Built Farm", "Built Farm"}, true},
		{"missing", []string{"Built Lab"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertLogOrder(sampleTrace(), sampleMessages(), Assertion{Type: AssertLogOrder, Messages: tt.messages})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertLogCount(t *testing.T) {
	assert.NoError(t, assertLogCount(sampleTrace(), sampleMessages(), Assertion{Message: "Built Farm", Count: 2}))
	assert.NoError(t, assertLogCount(sampleTrace(), sampleMessages(), Assertion{Message: "Built Lab", Count: 0}))
	assert.Error(t, assertLogCount(sampleTrace(), sampleMessages(), Assertion{Message: "Built Farm", Count: 1}))
}

func TestAssertNumberTolerance(t *testing.T) {
	a := Assertion{Type: AssertResource, ID: "wood", Equals: ptr(0.3)}
	assert.NoError(t, assertNumber(nil, a, "wood", 0.1+0.2))
	assert.Error(t, assertNumber(nil, a, "wood", 0.31))
}

func TestAssertAchievementsExactOrder(t *testing.T) {
	a := Assertion{Type: AssertAchievements, IDs: []string{"first_farm", "first_gold"}}
	assert.NoError(t, assertAchievements(nil, a, []string{"first_farm", "first_gold"}))
	assert.Error(t, assertAchievements(nil, a, []string{"first_gold", "first_farm"}))

	none := Assertion{Type: AssertAchievements}
	assert.NoError(t, assertAchievements(nil, none, []string{}))
	assert.Error(t, assertAchievements(nil, none, []string{"reborn"}))
}

func TestEvaluateAssertions_AgainstGame(t *testing.T) {
	g := api.New()
	for range 10 {
		require.True(t, g.Gather("wood"))
	}
	require.True(t, g.Build("farm"))

	r := NewResult()
	r.Trace = sampleTrace()[:1]

	failures := EvaluateAssertions(r, g, []Assertion{
		{Type: AssertResource, ID: "wood", Equals: ptr(0.0)},
		{Type: AssertRate, ID: "food", Equals: ptr(1.0)},
		{Type: AssertCount, ID: "farm", Equals: ptr(1.0)},
		{Type: AssertUpgradeLevel, ID: "efficiency", Equals: ptr(0.0)},
		{Type: AssertPrestigePoints, Equals: ptr(0.0)},
		{Type: AssertAchievements},
		{Type: AssertLogContains, Message: "Built Farm"},
	})
	assert.Empty(t, failures)

	failures = EvaluateAssertions(r, g, []Assertion{
		{Type: AssertResearched, ID: "education"},
		{Type: "bogus"},
	})
	require.Len(t, failures, 2)
	assert.Contains(t, failures[0], "assertions[0]")
	assert.Contains(t, failures[1], "unknown assertion type: bogus")
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertResource,
		Expected: "wood = 5",
		Actual:   "wood = 4",
		Trace:    sampleTrace()[:1],
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: resource")
	assert.Contains(t, msg, "Expected: wood = 5")
	assert.Contains(t, msg, "Actual: wood = 4")
	assert.Contains(t, msg, `[1] build farm ["Built Farm"]`)
}
