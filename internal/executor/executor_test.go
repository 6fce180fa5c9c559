package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannycalleri/usergraph/internal/testutil"
)

var errTransient = errors.New("transient")

func testPolicy(sleeper Sleeper) Policy {
	p := DefaultPolicy()
	p.Sleeper = sleeper
	p.IsRetryable = func(err error) bool { return errors.Is(err, errTransient) }
	p.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return p
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	sleeper := testutil.NewScriptedSleeper()
	calls := 0

	out, err := Execute(context.Background(), testPolicy(sleeper), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, calls)
	assert.Len(t, sleeper.Calls(), 1, "one delay precedes the single attempt")
}

func TestExecute_RetryBound_ExactlyMaxAttempts(t *testing.T) {
	sleeper := testutil.NewScriptedSleeper()
	calls := 0

	_, err := Execute(context.Background(), testPolicy(sleeper), func(ctx context.Context) (string, error) {
		calls++
		return "", errTransient
	})

	var ee *ExhaustedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.Attempts)
	assert.Equal(t, 2, calls, "always-failing retryable op runs exactly MaxAttempts times")
	assert.ErrorIs(t, err, errTransient, "last failure is preserved")
	assert.True(t, IsExhausted(err))
	assert.False(t, IsExhausted(errTransient))
}

func TestExecute_RecoversAfterTransientFailure(t *testing.T) {
	sleeper := testutil.NewScriptedSleeper()
	calls := 0

	out, err := Execute(context.Background(), testPolicy(sleeper), func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errTransient
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 2, calls)
	assert.Len(t, sleeper.Calls(), 2, "every attempt is preceded by a delay")
}

func TestExecute_TerminalShortCircuit_SingleAttempt(t *testing.T) {
	sleeper := testutil.NewScriptedSleeper()
	fatal := errors.New("conflict")
	calls := 0

	_, err := Execute(context.Background(), testPolicy(sleeper), func(ctx context.Context) (string, error) {
		calls++
		return "", fatal
	})

	require.True(t, IsTerminal(err))
	assert.ErrorIs(t, err, fatal, "terminal cause passes through")
	assert.Equal(t, 1, calls, "non-retryable failure ends the call after one attempt")
	assert.False(t, IsExhausted(err))
}

func TestExecute_DelayRangeMatchesPolicy(t *testing.T) {
	sleeper := testutil.NewScriptedSleeper()
	p := testPolicy(sleeper)
	p.MinDelay = 5 * time.Millisecond
	p.MaxDelay = 25 * time.Millisecond

	_, _ = Execute(context.Background(), p, func(ctx context.Context) (string, error) {
		return "", errTransient
	})

	for _, call := range sleeper.Calls() {
		assert.Equal(t, 5*time.Millisecond, call.Min)
		assert.Equal(t, 25*time.Millisecond, call.Max)
	}
}

func TestExecute_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Execute(ctx, testPolicy(testutil.NewScriptedSleeper()), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.True(t, IsTerminal(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls, "a cancelled call never runs the pending attempt")
}

func TestExecute_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"zero attempts", func(p *Policy) { p.MaxAttempts = 0 }},
		{"negative min delay", func(p *Policy) { p.MinDelay = -time.Second }},
		{"max below min", func(p *Policy) { p.MinDelay = time.Second; p.MaxDelay = 0 }},
		{"missing classifier", func(p *Policy) { p.IsRetryable = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPolicy(testutil.NewScriptedSleeper())
			tt.mutate(&p)

			_, err := Execute(context.Background(), p, func(ctx context.Context) (string, error) {
				t.Fatal("operation must not run under an invalid policy")
				return "", nil
			})
			assert.Error(t, err)
		})
	}
}

func TestJitterSleeper_BoundsAndCancellation(t *testing.T) {
	s := JitterSleeper{}

	start := time.Now()
	require.NoError(t, s.Sleep(context.Background(), time.Millisecond, 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Sleep(ctx, time.Hour, 2*time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
