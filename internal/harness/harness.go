package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dannycalleri/usergraph/internal/model"
	"github.com/dannycalleri/usergraph/internal/service"
	"github.com/dannycalleri/usergraph/internal/store"
	"github.com/dannycalleri/usergraph/internal/testutil"
	"github.com/dannycalleri/usergraph/internal/transport"
)

// Run executes a scenario and returns its result.
//
// Every run is fully deterministic: transport faults follow each step's
// script, the executor's delays are recorded no-ops, and request tokens are
// fixed per step. The same scenario therefore produces a byte-identical
// trace on every run, which is what golden comparison relies on.
func Run(scenario *Scenario) (*Result, error) {
	seed := make([]model.User, len(scenario.Seed))
	for i, su := range scenario.Seed {
		seed[i] = model.User{ID: su.ID, Name: su.Name, Friends: normalize(su.Friends)}
	}
	if err := store.CheckSymmetry(seed); err != nil {
		return nil, fmt.Errorf("scenario %q: invalid seed: %w", scenario.Name, err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := store.NewDispatcher(seed, logger)
	result := NewResult()

	ctx := context.Background()
	seq := 0
	for i, step := range scenario.Steps {
		seq = runStep(ctx, dispatcher, logger, result, i, step, seq)
	}

	result.Final = dispatcher.Snapshot()
	runAssertions(scenario.Assertions, result)
	return result, nil
}

// runStep executes one operation against a freshly scripted transport and
// appends its trace events. Returns the advanced sequence counter.
func runStep(ctx context.Context, d *store.Dispatcher, logger *slog.Logger, result *Result, i int, step Step, seq int) int {
	snapshot := d.Snapshot()
	if err := checkStepRefs(snapshot, step); err != nil {
		result.AddError("steps[%d]: %v", i, err)
		return seq
	}

	faults := testutil.NewScriptedFaults(
		testutil.FailFirst(step.TransientFailures, transport.ErrTransient)...,
	)
	client := transport.NewClient(
		transport.WithFaults(faults),
		transport.WithTokens(testutil.NewFixedTokens(fmt.Sprintf("step-%d", i))),
		transport.WithLogger(logger),
	)
	svc := service.New(client,
		service.WithSleeper(testutil.NewScriptedSleeper()),
		service.WithLogger(logger),
	)

	var action model.Action
	var err error
	switch step.Op {
	case "create":
		action, err = svc.Create(ctx, snapshot, step.Name, step.Friends)
	case "edit":
		action, err = svc.Edit(ctx, snapshot, step.ID, step.Name, step.Friends)
	default:
		// Unreachable for schema-validated scenarios.
		result.AddError("steps[%d]: unknown op %q", i, step.Op)
		return seq
	}

	seq++
	result.Trace = append(result.Trace, TraceEvent{
		Type:     "operation",
		Seq:      seq,
		Op:       step.Op,
		Name:     step.Name,
		TargetID: step.ID,
		Outcome:  outcome(err),
		Attempts: faults.Calls(),
	})

	expected := step.Expect
	if expected == "" {
		expected = "ok"
	}
	if got := outcome(err); got != expected {
		result.AddError("steps[%d]: expected outcome %q, got %q (%v)", i, expected, got, err)
	}

	if err == nil {
		state := d.Dispatch(action)
		seq++
		result.Trace = append(result.Trace, TraceEvent{
			Type:       "dispatch",
			Seq:        seq,
			ActionKind: string(action.Kind),
			ActionID:   action.ID,
			Users:      len(state),
		})
	}
	return seq
}

// checkStepRefs verifies the step only references users present in the
// snapshot. The store treats dangling references as a broken caller contract
// and panics; scenario files are end-user input, so the harness rejects them
// as scenario errors before anything is committed.
func checkStepRefs(snapshot []model.User, step Step) error {
	if step.Op == "edit" {
		if _, found := model.FindByID(snapshot, step.ID); !found {
			return fmt.Errorf("edit targets unknown user %d", step.ID)
		}
	}
	for _, fid := range step.Friends {
		if step.Op == "edit" && fid == step.ID {
			return fmt.Errorf("user %d cannot befriend itself", fid)
		}
		if _, found := model.FindByID(snapshot, fid); !found {
			return fmt.Errorf("friend reference to unknown user %d", fid)
		}
	}
	return nil
}

// outcome maps a service result onto the scenario's expect vocabulary.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(string(service.CodeOf(err)))
}

func normalize(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
