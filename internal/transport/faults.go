package transport

import "math/rand"

// DefaultFaultRate matches the original simulation: one send in five fails
// with the transport's generic failure kind.
const DefaultFaultRate = 0.2

// RandomFaults fails each send independently with probability Rate.
//
// Production uses this to exercise the retry path; tests should inject a
// scripted strategy instead so failures are deterministic.
//
// Thread-safety: stateless, safe for concurrent use (the shared math/rand
// source is internally locked).
type RandomFaults struct {
	Rate float64
}

// Fault implements FaultStrategy.
func (r RandomFaults) Fault() error {
	if rand.Float64() < r.Rate {
		return ErrTransient
	}
	return nil
}

// NoFaults always succeeds. Useful for demos that should never retry.
type NoFaults struct{}

// Fault implements FaultStrategy.
func (NoFaults) Fault() error { return nil }
