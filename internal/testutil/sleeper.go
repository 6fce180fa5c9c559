package testutil

import (
	"context"
	"sync"
	"time"
)

// SleepCall records one requested delay range.
type SleepCall struct {
	Min time.Duration
	Max time.Duration
}

// ScriptedSleeper satisfies the executor's Sleeper interface without ever
// suspending. It records every requested delay range so tests can assert the
// backoff shape instead of measuring wall-clock time.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ScriptedSleeper struct {
	mu    sync.Mutex
	calls []SleepCall
}

// NewScriptedSleeper creates an empty recorded sleeper.
func NewScriptedSleeper() *ScriptedSleeper {
	return &ScriptedSleeper{}
}

// Sleep returns immediately, recording the requested range.
// Honors cancellation so tests can exercise the abort path.
func (s *ScriptedSleeper) Sleep(ctx context.Context, min, max time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, SleepCall{Min: min, Max: max})
	return nil
}

// Calls returns a copy of the recorded delay ranges in request order.
func (s *ScriptedSleeper) Calls() []SleepCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SleepCall, len(s.calls))
	copy(out, s.calls)
	return out
}
