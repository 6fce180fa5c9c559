package executor

import (
	"context"
	"math/rand"
	"time"
)

// Sleeper implements the pre-attempt delay.
// Implemented by JitterSleeper (production) and testutil.ScriptedSleeper (tests).
type Sleeper interface {
	// Sleep suspends for a duration drawn from [min, max), or until the
	// context is done, whichever comes first. Returns ctx.Err() when
	// cancelled before the delay elapses.
	Sleep(ctx context.Context, min, max time.Duration) error
}

// JitterSleeper draws the delay uniformly from [min, max) using the shared
// math/rand source. This models network and queueing jitter: real
// transports see variable latency, so retries must not fire in lockstep.
//
// Thread-safety: stateless, safe for concurrent use.
type JitterSleeper struct{}

// Sleep implements Sleeper.
func (JitterSleeper) Sleep(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
