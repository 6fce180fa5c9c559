package testutil

// FixedTokens generates the same request token every time.
//
// This enables deterministic log correlation in tests and byte-identical
// golden traces: the same scenario with the same FixedTokens produces the
// same output on every run.
//
// Thread-safety: stateless after construction, safe for concurrent use.
type FixedTokens struct {
	token string
}

// NewFixedTokens creates a generator returning token on every call.
// An empty token defaults to "test-token".
func NewFixedTokens(token string) *FixedTokens {
	if token == "" {
		token = "test-token"
	}
	return &FixedTokens{token: token}
}

// Generate returns the fixed token.
// Implements the transport's TokenGenerator interface.
func (g *FixedTokens) Generate() string {
	return g.token
}
