package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/idlecore/internal/canon"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Final        map[string]any
}

// toCanonicalMap converts a TraceSnapshot to the shapes canon.Marshal
// accepts. Zero-valued optional fields are left out.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		m := map[string]any{
			"seq": event.Seq,
			"op":  event.Op,
		}
		if event.Arg != "" {
			m["arg"] = event.Arg
		}
		if event.Rate != 0 {
			m["rate"] = event.Rate
		}
		if event.Times != 0 {
			m["times"] = event.Times
		}
		if event.At != 0 {
			m["at"] = event.At
		}
		if event.Steps != 0 {
			m["steps"] = event.Steps
		}
		if event.OK != nil {
			m["ok"] = *event.OK
		}
		if len(event.Messages) > 0 {
			m["messages"] = event.Messages
		}
		traceList[i] = m
	}

	out := map[string]any{
		"scenario": s.ScenarioName,
		"trace":    traceList,
	}
	if s.Final != nil {
		out["final"] = s.Final
	}
	return out
}

// Marshal returns the canonical JSON form of the snapshot.
func (s *TraceSnapshot) Marshal() ([]byte, error) {
	return canon.Marshal(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace and final state
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Final:        result.Final,
	}
	traceJSON, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
