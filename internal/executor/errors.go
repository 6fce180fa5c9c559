package executor

import (
	"errors"
	"fmt"
)

// TerminalError wraps a failure that retrying cannot fix.
//
// The executor produces it in two cases: the policy classified the operation's
// error as non-retryable, or the context was cancelled during the pre-attempt
// delay. The cause is always preserved and reachable through errors.Is/As.
type TerminalError struct {
	Cause error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal failure: %v", e.Cause)
}

func (e *TerminalError) Unwrap() error {
	return e.Cause
}

// ExhaustedError reports that every allowed attempt failed with a retryable
// error. Last preserves the failure from the final attempt.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// IsExhausted returns true if the error is (or wraps) an ExhaustedError.
func IsExhausted(err error) bool {
	var ee *ExhaustedError
	return errors.As(err, &ee)
}

// IsTerminal returns true if the error is (or wraps) a TerminalError.
func IsTerminal(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}
