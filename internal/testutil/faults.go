package testutil

import "sync"

// ScriptedFaults satisfies the transport's FaultStrategy interface with a
// predetermined outcome per call: call n returns script[n], and calls past
// the end of the script succeed.
//
// This replaces the original randomized fault injection with a deterministic
// script, so tests assert exact retry counts instead of probabilities.
//
// Thread-safety: safe for concurrent use via internal mutex.
type ScriptedFaults struct {
	mu     sync.Mutex
	script []error
	calls  int
}

// NewScriptedFaults creates a strategy that fails call n with script[n].
// A nil entry means that call succeeds.
func NewScriptedFaults(script ...error) *ScriptedFaults {
	return &ScriptedFaults{script: script}
}

// FailFirst builds a script of n copies of err followed by success.
func FailFirst(n int, err error) []error {
	script := make([]error, n)
	for i := range script {
		script[i] = err
	}
	return script
}

// Fault returns the scripted outcome for the next call.
func (f *ScriptedFaults) Fault() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.script) {
		return f.script[i]
	}
	return nil
}

// Calls returns how many times Fault has been consulted.
func (f *ScriptedFaults) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
