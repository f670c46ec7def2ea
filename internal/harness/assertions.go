package harness

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/roach88/idlecore/internal/api"
)

// tolerance absorbs float error from repeated fixed-step integration.
const tolerance = 1e-9

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s", i+1, event.Op, event.Arg)
		if len(event.Messages) > 0 {
			fmt.Fprintf(&buf, " %q", event.Messages)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// assertNumber compares a read value against the expectation.
func assertNumber(trace []TraceEvent, a Assertion, what string, actual float64) error {
	if math.Abs(actual-*a.Equals) <= tolerance {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%s = %g", what, *a.Equals),
		Actual:   fmt.Sprintf("%s = %g", what, actual),
		Trace:    trace,
	}
}

// assertAchievements requires the exact unlock order.
func assertAchievements(trace []TraceEvent, a Assertion, actual []string) error {
	want := a.IDs
	if want == nil {
		want = []string{}
	}
	if slices.Equal(want, actual) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%q", want),
		Actual:   fmt.Sprintf("%q", actual),
		Trace:    trace,
	}
}

// assertLogContains checks that the message was emitted at least once.
func assertLogContains(trace []TraceEvent, messages []string, a Assertion) error {
	if slices.Contains(messages, a.Message) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("message %q", a.Message),
		Actual:   "not found in log",
		Trace:    trace,
	}
}

// assertLogOrder checks that the messages appear in the given order.
// Other messages may appear in between.
func assertLogOrder(trace []TraceEvent, messages []string, a Assertion) error {
	next := 0
	for _, msg := range messages {
		if next < len(a.Messages) && msg == a.Messages[next] {
			next++
		}
	}
	if next == len(a.Messages) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("messages in order %q", a.Messages),
		Actual:   fmt.Sprintf("%q not found after %q", a.Messages[next], a.Messages[:next]),
		Trace:    trace,
	}
}

// assertLogCount checks that the message was emitted exactly Count times.
func assertLogCount(trace []TraceEvent, messages []string, a Assertion) error {
	n := 0
	for _, msg := range messages {
		if msg == a.Message {
			n++
		}
	}
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("message %q %d times", a.Message, a.Count),
		Actual:   fmt.Sprintf("%d times", n),
		Trace:    trace,
	}
}

func achievementIDs(g *api.Game) []string {
	ids := []string{}
	for _, a := range g.Engine().Achievements() {
		ids = append(ids, a.String())
	}
	return ids
}

// EvaluateAssertions runs every assertion against the result and the
// final game state, returning the failure messages.
func EvaluateAssertions(result *Result, g *api.Game, assertions []Assertion) []string {
	var failures []string
	messages := result.Messages()
	trace := result.Trace

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertResource:
			err = assertNumber(trace, a, a.ID, g.GetResource(a.ID))
		case AssertRate:
			err = assertNumber(trace, a, a.ID+"/s", g.GetResourceRate(a.ID))
		case AssertCount:
			err = assertNumber(trace, a, a.ID+" count", float64(g.BuildingCount(a.ID)))
		case AssertUpgradeLevel:
			err = assertNumber(trace, a, a.ID+" level", float64(g.UpgradeLevel(a.ID)))
		case AssertPrestigePoints:
			err = assertNumber(trace, a, "prestige points", g.PrestigePoints())
		case AssertResearched:
			if !g.TechUnlocked(a.ID) {
				err = &AssertionError{Type: a.Type, Expected: a.ID + " researched", Actual: "locked", Trace: trace}
			}
		case AssertAchievements:
			err = assertAchievements(trace, a, achievementIDs(g))
		case AssertLogContains:
			err = assertLogContains(trace, messages, a)
		case AssertLogOrder:
			err = assertLogOrder(trace, messages, a)
		case AssertLogCount:
			err = assertLogCount(trace, messages, a)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}
