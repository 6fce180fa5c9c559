// Package service turns user requests into committed domain actions.
//
// Service validates the request, runs the transport call under the retry
// executor, re-checks name uniqueness against the caller's snapshot, and
// returns the action to dispatch. It never mutates friend lists itself;
// deriving symmetric edges is the store's job.
//
// The snapshot passed in is a read-only copy taken at call time. Under
// concurrent creates with the same name the duplicate check can go stale;
// that is an accepted consistency gap of the design, matching a backend
// whose uniqueness check also races.
package service

import (
	"context"
	"log/slog"

	"github.com/dannycalleri/usergraph/internal/executor"
	"github.com/dannycalleri/usergraph/internal/model"
	"github.com/dannycalleri/usergraph/internal/transport"
)

// Service implements the create and edit user operations.
//
// Thread-safety: safe for concurrent use; concurrent operations run
// independent executor loops and share no mutable state.
type Service struct {
	client  *transport.Client
	policy  executor.Policy
	sleeper executor.Sleeper
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy replaces the retry policy (attempt bound and delay range).
// The retryable classifier is always the transport's transient kind.
func WithPolicy(p executor.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithSleeper replaces the executor's delay implementation.
// Tests inject a deterministic sleeper here.
func WithSleeper(sl executor.Sleeper) Option {
	return func(s *Service) { s.sleeper = sl }
}

// WithLogger replaces the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service backed by the given transport client.
// Defaults: executor.DefaultPolicy() and slog.Default().
func New(client *transport.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		policy: executor.DefaultPolicy(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and commits a new user against the snapshot.
//
// On success it returns the CreateUser action carrying the requested friend
// list verbatim and the next free id, assigned as max(existing ids)+1. The
// duplicate-name check runs after the transport call on purpose: it mirrors a
// server-side uniqueness check, which a client only learns about once the
// request lands.
func (s *Service) Create(ctx context.Context, snapshot []model.User, name string, friends []int) (model.Action, error) {
	normalized := model.NormalizeName(name)
	if normalized == "" {
		return model.Action{}, &DomainError{Code: CodeEmptyName, Message: "user name must not be empty"}
	}

	echo, err := s.send(ctx, transport.Payload{
		Name:    normalized,
		Friends: friends,
		Users:   snapshot,
	})
	if err != nil {
		return model.Action{}, s.translate("create", err)
	}

	if _, found := model.FindByName(snapshot, echo.Name); found {
		return model.Action{}, &DomainError{Code: CodeDuplicateName, Message: "user already exists"}
	}

	id := model.MaxID(snapshot) + 1
	s.logger.Info("user create committed", "id", id, "name", echo.Name)
	return model.CreateUser(id, echo.Name, echo.Friends), nil
}

// Edit validates and commits changes to an existing user.
//
// Same flow as Create, with the duplicate-name check scoped to exclude the
// user being edited: renaming a user to its own name is not a conflict.
func (s *Service) Edit(ctx context.Context, snapshot []model.User, id int, name string, friends []int) (model.Action, error) {
	normalized := model.NormalizeName(name)
	if normalized == "" {
		return model.Action{}, &DomainError{Code: CodeEmptyName, Message: "user name must not be empty"}
	}

	echo, err := s.send(ctx, transport.Payload{
		ID:      id,
		Name:    normalized,
		Friends: friends,
		Users:   snapshot,
	})
	if err != nil {
		return model.Action{}, s.translate("edit", err)
	}

	if idx, found := model.FindByName(snapshot, echo.Name); found && snapshot[idx].ID != id {
		return model.Action{}, &DomainError{Code: CodeDuplicateName, Message: "user already exists"}
	}

	s.logger.Info("user edit committed", "id", id, "name", echo.Name)
	return model.EditUser(id, echo.Name, echo.Friends), nil
}

// send runs the transport call under the retry executor.
// Only the transport's transient kind is retryable; everything else
// short-circuits.
func (s *Service) send(ctx context.Context, p transport.Payload) (transport.Payload, error) {
	policy := s.policy
	policy.IsRetryable = transport.IsTransient
	policy.Sleeper = s.sleeper
	policy.Logger = s.logger

	return executor.Execute(ctx, policy, func(ctx context.Context) (transport.Payload, error) {
		return s.client.Send(ctx, p)
	})
}

// translate maps executor failures onto the domain taxonomy.
func (s *Service) translate(op string, err error) error {
	if executor.IsExhausted(err) {
		s.logger.Warn("operation unavailable after retries", "op", op, "err", err)
		return &DomainError{Code: CodeUnavailable, Message: "service unavailable, please retry", Err: err}
	}
	s.logger.Error("operation failed", "op", op, "err", err)
	return &DomainError{Code: CodeUnknown, Message: "unexpected failure", Err: err}
}
