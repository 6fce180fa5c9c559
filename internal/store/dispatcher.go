package store

import (
	"log/slog"
	"sync"

	"github.com/dannycalleri/usergraph/internal/model"
)

// Dispatcher owns the latest state reference and serializes transitions.
//
// All mutations funnel through Dispatch, which applies the reducer under a
// mutex: no two Apply calls ever interleave, even when many operations are
// in flight concurrently. Everything handed out is a deep copy, so callers
// hold snapshots the dispatcher can never race against.
//
// There is no reconciliation between concurrently issued actions: whichever
// dispatch completes last wins, field by field.
type Dispatcher struct {
	mu     sync.Mutex
	state  []model.User
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher seeded with a copy of initial.
// A nil logger selects slog.Default().
func NewDispatcher(initial []model.User, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		state:  model.CloneUsers(initial),
		logger: logger,
	}
}

// Dispatch applies the action to the current state and returns a snapshot of
// the result. Panics propagate from the reducer on contract violations.
func (d *Dispatcher) Dispatch(action model.Action) []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = Apply(d.state, action)
	d.logger.Debug("action dispatched",
		"kind", action.Kind,
		"id", action.ID,
		"users", len(d.state),
	)
	return model.CloneUsers(d.state)
}

// Snapshot returns a read-only copy of the current state, taken at call
// time. The copy never observes dispatches made after it was taken.
func (d *Dispatcher) Snapshot() []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return model.CloneUsers(d.state)
}
