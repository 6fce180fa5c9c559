package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run against the user graph core.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Seed contains users present before the first step. The seed must
	// already satisfy the symmetry invariant; the harness checks it.
	Seed []SeedUser `yaml:"seed,omitempty"`

	// Steps are executed in order, each dispatching on success.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// SeedUser is a user present in the initial state.
type SeedUser struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Friends []int  `yaml:"friends,omitempty"`
}

// Step is one create or edit operation.
type Step struct {
	// Op is "create" or "edit".
	Op string `yaml:"op"`

	// ID is the target user id. Required for edit, ignored for create.
	ID int `yaml:"id,omitempty"`

	// Name is the requested user name.
	Name string `yaml:"name"`

	// Friends is the requested friend list.
	Friends []int `yaml:"friends,omitempty"`

	// TransientFailures scripts the transport: that many sends fail with the
	// transient kind before one succeeds. With the default two-attempt
	// policy, 0 and 1 succeed and 2 exhausts the retries.
	TransientFailures int `yaml:"transient_failures,omitempty"`

	// Expect is the required outcome: "ok", "empty_name", "duplicate_name",
	// "unavailable" or "unknown". Empty means "ok".
	Expect string `yaml:"expect,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is "symmetric", "user_count" or "friends_of".
	Type string `yaml:"type"`

	// ID selects the subject user (friends_of).
	ID int `yaml:"id,omitempty"`

	// Count is the expected user count (user_count).
	Count int `yaml:"count,omitempty"`

	// Friends is the expected friend list (friends_of).
	Friends []int `yaml:"friends,omitempty"`
}

// LoadScenario reads, schema-validates and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario validates scenario bytes against the CUE schema and
// unmarshals them.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := ValidateScenario(data); err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	// The schema cannot express cross-field rules; check them here.
	for i, step := range s.Steps {
		if step.Op == "edit" && step.ID == 0 {
			return nil, fmt.Errorf("parse scenario: steps[%d]: edit requires an id", i)
		}
	}

	return &s, nil
}
