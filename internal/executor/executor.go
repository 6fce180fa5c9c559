// Package executor provides a generic retry engine for unreliable operations.
//
// The executor has no domain knowledge: it runs a zero-argument unit of work
// under a Policy that bounds attempts, shapes the jittered delay before each
// attempt, and classifies failures as retryable or terminal. Attempts within
// one Execute call are strictly sequential; independent Execute calls may run
// concurrently and are mutually unordered until each resolves.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Default policy values used by the domain layer.
const (
	DefaultMaxAttempts = 2
	DefaultMinDelay    = 100 * time.Millisecond
	DefaultMaxDelay    = 1100 * time.Millisecond
)

// Operation is a zero-argument unit of work that may fail.
// The context is the one passed to Execute, so operations can honor cancellation.
type Operation[T any] func(ctx context.Context) (T, error)

// Policy controls retry behavior for a single Execute call.
type Policy struct {
	// MaxAttempts bounds the total number of operation runs. Must be >= 1.
	MaxAttempts int

	// MinDelay and MaxDelay bound the jittered pause taken before every
	// attempt, the first included. The delay is drawn uniformly from
	// [MinDelay, MaxDelay). MinDelay must be <= MaxDelay.
	MinDelay time.Duration
	MaxDelay time.Duration

	// IsRetryable classifies an operation failure. A false result terminates
	// the call immediately with a TerminalError; a true result consumes an
	// attempt. Required.
	IsRetryable func(error) bool

	// Sleeper implements the pre-attempt delay. Nil selects JitterSleeper.
	// Tests inject a deterministic implementation here.
	Sleeper Sleeper

	// Logger receives per-attempt diagnostics. Nil selects slog.Default().
	Logger *slog.Logger
}

// DefaultPolicy returns the policy the domain layer uses for transport calls:
// two attempts with a delay drawn from [100ms, 1100ms).
// Callers must still set IsRetryable.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		MinDelay:    DefaultMinDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

func (p Policy) validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("executor: policy MaxAttempts must be >= 1, got %d", p.MaxAttempts)
	}
	if p.MinDelay < 0 || p.MaxDelay < p.MinDelay {
		return fmt.Errorf("executor: policy delay range [%v, %v) is invalid", p.MinDelay, p.MaxDelay)
	}
	if p.IsRetryable == nil {
		return fmt.Errorf("executor: policy IsRetryable is required")
	}
	return nil
}

// Execute runs op under the given policy.
//
// Before every attempt the executor suspends for a jittered delay, then runs
// the operation. Success returns immediately. A non-retryable failure returns
// a *TerminalError wrapping the cause without consuming further attempts. A
// retryable failure consumes an attempt; once MaxAttempts retryable failures
// have accumulated the call fails with *ExhaustedError.
//
// Context cancellation during the delay aborts the call with a *TerminalError
// wrapping ctx.Err(). A cancelled call never runs the pending attempt.
func Execute[T any](ctx context.Context, p Policy, op Operation[T]) (T, error) {
	var zero T

	if err := p.validate(); err != nil {
		return zero, err
	}

	sleeper := p.Sleeper
	if sleeper == nil {
		sleeper = JitterSleeper{}
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attempts := 0
	for {
		if err := sleeper.Sleep(ctx, p.MinDelay, p.MaxDelay); err != nil {
			logger.Debug("execute aborted during delay", "attempts", attempts, "err", err)
			return zero, &TerminalError{Cause: err}
		}

		out, err := op(ctx)
		if err == nil {
			logger.Debug("execute succeeded", "attempt", attempts+1)
			return out, nil
		}

		if !p.IsRetryable(err) {
			logger.Debug("execute hit terminal failure", "attempt", attempts+1, "err", err)
			return zero, &TerminalError{Cause: err}
		}

		attempts++
		logger.Debug("execute retrying after transient failure",
			"attempt", attempts,
			"max_attempts", p.MaxAttempts,
			"err", err,
		)
		if attempts >= p.MaxAttempts {
			return zero, &ExhaustedError{Attempts: attempts, Last: err}
		}
	}
}
