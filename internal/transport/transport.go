// Package transport simulates the backend the user operations talk to.
//
// The simulated backend is an echo: it never stores anything and returns the
// request payload unchanged on success. Its only externally observable
// contract is the binary success/fail-with-kind outcome; fault injection is
// pluggable so tests replace the production random faults with a script.
// A real transport must satisfy the same contract: fail with ErrTransient
// for failures worth retrying and with anything else for failures that are not.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dannycalleri/usergraph/internal/model"
)

// ErrTransient is the transport's generic failure kind: a failure expected
// to succeed if retried unchanged. It is the only error the domain layer
// classifies as retryable.
var ErrTransient = errors.New("transient transport failure")

// IsTransient returns true if the error is (or wraps) ErrTransient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Payload is the request the client sends for a create or edit.
// The backend echoes it back verbatim on success.
type Payload struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name"`
	Friends []int  `json:"friends"`

	// Users is the caller's snapshot, shipped along so a real backend could
	// run its own uniqueness check against it.
	Users []model.User `json:"users"`
}

// FaultStrategy decides whether the next send fails.
// Implemented by RandomFaults (production) and testutil.ScriptedFaults (tests).
type FaultStrategy interface {
	// Fault returns nil for success or the error the send should fail with.
	Fault() error
}

// TokenGenerator produces request tokens for log correlation.
// Implemented by UUIDv7Generator (production) and testutil.FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 request tokens, so tokens
// sort by send time in logs and traces.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Client is the simulated transport endpoint.
//
// Thread-safety: safe for concurrent use as long as the injected strategy
// and generator are (both provided implementations are).
type Client struct {
	faults FaultStrategy
	tokens TokenGenerator
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithFaults replaces the fault strategy. Nil entries are ignored.
func WithFaults(s FaultStrategy) Option {
	return func(c *Client) {
		if s != nil {
			c.faults = s
		}
	}
}

// WithTokens replaces the request token generator.
func WithTokens(g TokenGenerator) Option {
	return func(c *Client) {
		if g != nil {
			c.tokens = g
		}
	}
}

// WithLogger replaces the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a simulated transport client.
// Defaults: random faults at DefaultFaultRate, UUIDv7 tokens, slog.Default().
func NewClient(opts ...Option) *Client {
	c := &Client{
		faults: RandomFaults{Rate: DefaultFaultRate},
		tokens: UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send submits a payload to the simulated backend and returns the echo.
//
// Failure is decided by the injected fault strategy. Context cancellation is
// honored before the send; the delay/backoff shape around Send belongs to the
// executor, not the transport.
func (c *Client) Send(ctx context.Context, p Payload) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return Payload{}, fmt.Errorf("send: %w", err)
	}

	token := c.tokens.Generate()
	c.logger.Debug("sending request",
		"token", token,
		"name", p.Name,
		"friends", p.Friends,
	)

	if err := c.faults.Fault(); err != nil {
		c.logger.Debug("request failed", "token", token, "err", err)
		return Payload{}, err
	}

	c.logger.Debug("request succeeded", "token", token)
	return p, nil
}
