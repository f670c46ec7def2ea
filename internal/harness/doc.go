// Package harness runs scripted game sessions and checks their outcome.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: first_farm
//	description: "Gathered wood pays for a farm"
//	config:
//	  starting_resources: { wood: 10 }
//	steps:
//	  - op: tick            # first tick sets the baseline
//	  - op: build
//	    arg: farm
//	    expect: true
//	  - op: tick
//	    advance: 5
//	assertions:
//	  - type: resource
//	    id: food
//	    equals: 5
//	  - type: log_contains
//	    message: "Built Farm"
//
// config is checked against the same schema as engine configuration files.
// Unknown fields anywhere in the file are errors.
//
// # Assertion Types
//
//   - resource, rate, count, upgrade_level: compare a value read through
//     the string boundary with equals
//   - prestige_points: compare the point total with equals
//   - researched: the tech is unlocked
//   - achievements: exact unlock order
//   - log_contains, log_order, log_count: messages drained from the event
//     log after every step
//
// # Deterministic Testing
//
// Every run starts from a fresh game. The host clock is a
// testutil.ManualClock that only moves on tick steps, and trace entries
// are numbered by an engine.Clock, so identical scenarios produce
// identical traces. RunWithGolden compares the canonical JSON of the trace
// and final snapshot against testdata/golden.
package harness
