// Package harness runs scripted scenarios against the real service and store.
//
// A scenario is a YAML file describing seed users, a sequence of create/edit
// steps with per-step fault scripts, and assertions over the final state.
// Scenarios replace the UI-driven flows of the original application with
// something replayable: the transport's random faults become a deterministic
// script, the executor's jittered delays become recorded no-ops, and the
// resulting trace is stable enough for golden file comparison.
//
// Scenario files are validated against an embedded CUE schema before they
// run, so malformed files fail with a schema error instead of a confusing
// zero-value execution.
package harness
