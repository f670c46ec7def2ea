package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/idlecore/internal/config"
)

// Scenario is a scripted game session with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides the default engine configuration. It is checked
	// against the same schema as configuration files.
	Config map[string]any `yaml:"config,omitempty"`

	// Start is the host clock reading before the first step.
	Start float64 `yaml:"start,omitempty"`

	// Steps are executed in order against a fresh game.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the game.
type Step struct {
	// Op is the operation: tick, build, research, upgrade, gather,
	// prestige, set_tick_rate, save_load or load.
	Op string `yaml:"op"`

	// Arg is the identifier the operation acts on. For load it is the blob.
	Arg string `yaml:"arg,omitempty"`

	// Advance moves the host clock forward before a tick.
	Advance float64 `yaml:"advance,omitempty"`

	// Rate is the argument of set_tick_rate.
	Rate float64 `yaml:"rate,omitempty"`

	// Times repeats the operation. Zero means once.
	Times int `yaml:"times,omitempty"`

	// Expect is the required outcome of every repetition. Nil skips the
	// check.
	Expect *bool `yaml:"expect,omitempty"`
}

// Step operations.
const (
	OpTick        = "tick"
	OpBuild       = "build"
	OpResearch    = "research"
	OpUpgrade     = "upgrade"
	OpGather      = "gather"
	OpPrestige    = "prestige"
	OpSetTickRate = "set_tick_rate"
	OpSaveLoad    = "save_load"
	OpLoad        = "load"
)

// Assertion validates the trace or the final state.
type Assertion struct {
	// Type selects the check; see the Assert constants.
	Type string `yaml:"type"`

	// ID names the resource, building, tech or upgrade.
	ID string `yaml:"id,omitempty"`

	// Equals is the expected amount, count, level or point total.
	Equals *float64 `yaml:"equals,omitempty"`

	// IDs is the expected achievement list, in unlock order.
	IDs []string `yaml:"ids,omitempty"`

	// Message is a log message (log_contains, log_count).
	Message string `yaml:"message,omitempty"`

	// Messages is the expected message order (log_order).
	Messages []string `yaml:"messages,omitempty"`

	// Count is the exact number of occurrences (log_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertResource       = "resource"
	AssertRate           = "rate"
	AssertCount          = "count"
	AssertUpgradeLevel   = "upgrade_level"
	AssertPrestigePoints = "prestige_points"
	AssertResearched     = "researched"
	AssertAchievements   = "achievements"
	AssertLogContains    = "log_contains"
	AssertLogOrder       = "log_order"
	AssertLogCount       = "log_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario is LoadScenario for in-memory YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// EngineConfig resolves the scenario's overrides against the defaults.
func (s *Scenario) EngineConfig() (config.Config, error) {
	if len(s.Config) == 0 {
		return config.Default(), nil
	}
	// JSON is valid CUE, so the overrides go through the file schema.
	src, err := json.Marshal(s.Config)
	if err != nil {
		return config.Config{}, fmt.Errorf("encode config overrides: %w", err)
	}
	return config.Parse(src, s.Name+".config")
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	if step.Times < 0 {
		return errors.New("times must not be negative")
	}
	switch step.Op {
	case "":
		return errors.New("op is required")
	case OpBuild, OpResearch, OpUpgrade, OpGather:
		if step.Arg == "" {
			return fmt.Errorf("%s requires arg", step.Op)
		}
	case OpTick:
		if step.Advance < 0 {
			return errors.New("tick advance must not be negative")
		}
		if step.Expect != nil {
			return errors.New("tick has no outcome to expect")
		}
	case OpPrestige:
		if step.Expect != nil {
			return errors.New("prestige has no outcome to expect")
		}
	case OpSetTickRate, OpSaveLoad, OpLoad:
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case "":
		return errors.New("type is required")
	case AssertResource, AssertRate, AssertCount, AssertUpgradeLevel:
		if a.ID == "" {
			return fmt.Errorf("%s requires id", a.Type)
		}
		if a.Equals == nil {
			return fmt.Errorf("%s requires equals", a.Type)
		}
	case AssertPrestigePoints:
		if a.Equals == nil {
			return fmt.Errorf("%s requires equals", a.Type)
		}
	case AssertResearched:
		if a.ID == "" {
			return fmt.Errorf("%s requires id", a.Type)
		}
	case AssertAchievements:
		// An absent list asserts that nothing is unlocked.
	case AssertLogContains, AssertLogCount:
		if a.Message == "" {
			return fmt.Errorf("%s requires message", a.Type)
		}
	case AssertLogOrder:
		if len(a.Messages) == 0 {
			return fmt.Errorf("%s requires messages", a.Type)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
