package harness

import (
	"fmt"

	"github.com/dannycalleri/usergraph/internal/model"
)

// TraceEvent records one observable step of a scenario run.
// Field order is the JSON serialization order used for golden comparison.
type TraceEvent struct {
	// Type is "operation" (a service call settled) or "dispatch" (its action
	// was applied to the store).
	Type string `json:"type"`

	Seq int `json:"seq"`

	// Operation fields.
	Op       string `json:"op,omitempty"`
	Name     string `json:"name,omitempty"`
	TargetID int    `json:"target_id,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
	Attempts int    `json:"attempts,omitempty"`

	// Dispatch fields.
	ActionKind string `json:"action_kind,omitempty"`
	ActionID   int    `json:"action_id,omitempty"`
	Users      int    `json:"users,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace lists operations and dispatches in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expect/assertion violations. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the state after the last step.
	Final []model.User `json:"final"`
}

// NewResult creates an empty passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a violation and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
