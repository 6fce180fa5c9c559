// Package store holds the user graph state and the reducer that advances it.
//
// Apply is a pure fold over actions: (state, action) -> new state, never
// mutating its input. It is the sole authority for the symmetric-friendship
// invariant: after any settled sequence of transitions, v appears in u's
// friend list exactly when u appears in v's.
//
// Dispatcher owns the latest state reference and serializes Apply calls, so
// store transitions are strictly ordered even when many operations resolve
// concurrently. Actions take effect in dispatch-completion order, not in the
// order the operations were started.
package store
