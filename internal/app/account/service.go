/*
Package account implements user registration.

CreateUser checks the username against the store, hashes the password, signs an identity
token and persists the user. A username that is already taken is reported as data
(OutcomeConflict), never as an error. The store's unique constraint is the final arbiter:
when two registrations race past the lookup, the loser gets OutcomeConflict and its token
is discarded.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"usergraph/internal/app/user"
)

var (
	// ErrStoreUnavailable wraps store failures that persisted after retries.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrInternal wraps hashing and signing failures.
	ErrInternal = errors.New("internal error")
)

// Retry defaults for transient store failures.
const (
	DefaultRetryBase  = 50 * time.Millisecond
	DefaultMaxRetries = 3
)

// Store is the persistence the service needs. FindByUsername returns (nil, nil) on a miss;
// Create reports a taken username with user.ErrUsernameTaken.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, nu user.NewUser) (*user.User, error)
}

// Hasher turns a plaintext password into an encoded hash.
type Hasher interface {
	Hash(password string) (string, error)
}

// TokenIssuer signs identity tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Outcome tags a successful CreateUser call.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeConflict
)

// String returns the lower-case outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeConflict:
		return "conflict"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the value of a CreateUser call that reached a decision.
// User and Token are set only for OutcomeCreated.
type Result struct {
	Outcome  Outcome
	Username string
	User     *user.User
	Token    string
}

// Service registers users. It is safe for concurrent use.
type Service struct {
	store      Store
	hasher     Hasher
	tokens     TokenIssuer
	logger     zerolog.Logger
	retryBase  time.Duration
	maxRetries uint64
}

// Option customizes a Service built by NewService.
type Option func(*Service)

// WithRetry overrides the backoff used for transient store failures.
func WithRetry(base time.Duration, maxRetries uint64) Option {
	return func(s *Service) {
		s.retryBase = base
		s.maxRetries = maxRetries
	}
}

// NewService returns a Service with the default retry policy unless overridden by opts.
func NewService(store Store, hasher Hasher, tokens TokenIssuer, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger.With().Str("component", "account").Logger(),
		retryBase:  DefaultRetryBase,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers username. The returned error, when non-nil, wraps
// ErrStoreUnavailable, ErrInternal or the context error.
func (s *Service) CreateUser(ctx context.Context, username, name, password string) (Result, error) {
	log := s.log(ctx).With().Str("username", username).Logger()

	var existing *user.User
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.store.FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("register: failed to look up username")
		return Result{}, s.storeFailure(ctx, err)
	}

	if existing != nil {
		log.Warn().Msg("registration conflict: username already exists")
		return Result{Outcome: OutcomeConflict, Username: username}, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error().Err(err).Msg("register: failed to hash password")
		return Result{}, fmt.Errorf("%w: hash password: %w", ErrInternal, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		log.Error().Err(err).Msg("register: failed to sign token")
		return Result{}, fmt.Errorf("%w: sign token: %w", ErrInternal, err)
	}

	var created *user.User
	err = s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.Create(ctx, user.NewUser{
			Username:     username,
			Name:         name,
			PasswordHash: hash,
		})
		return err
	})
	if errors.Is(err, user.ErrUsernameTaken) {
		log.Warn().Msg("registration conflict: username claimed concurrently")
		return Result{Outcome: OutcomeConflict, Username: username}, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("register: failed to create user")
		return Result{}, s.storeFailure(ctx, err)
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")

	return Result{
		Outcome:  OutcomeCreated,
		Username: username,
		User:     created,
		Token:    token,
	}, nil
}

// withRetry repeats fn while it fails with user.ErrTransient.
func (s *Service) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.retryBase))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, user.ErrTransient) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Service) storeFailure(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, ctxErr)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// log prefers the request-scoped logger carried by ctx.
func (s *Service) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
