package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
	"github.com/sweetshop/inventory-api/pkg/password"
	"github.com/sweetshop/inventory-api/pkg/token"
)

// dummyDigest is compared against when the email is unknown so the not-found
// path costs roughly the same as a failed password check.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginLimiter throttles repeated login attempts per email. Implementations
// are best-effort: callers treat limiter errors as "allowed".
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	NoteFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.AuthRepository
	hasher  *password.Hasher
	tokens  *token.Manager
	limiter LoginLimiter // optional
	log     zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, hasher *password.Hasher, tokens *token.Manager, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a user and returns a freshly issued token alongside the
// stored user. The role is always domain.RoleUser: callers cannot grant
// themselves privileges at signup, admin accounts are provisioned
// out-of-band. Email uniqueness is enforced by the store's unique index and
// surfaces as domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, pass string) (string, *domain.User, error) {
	if username == "" || email == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return "", nil, domain.ErrUserExists
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	tkn, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return tkn, created, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both return domain.ErrInvalidCredentials so the response never
// reveals which factor failed.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *domain.User, error) {
	if email == "" || pass == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(pass, dummyDigest)
			s.noteFailure(ctx, email)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		s.noteFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return tkn, user, nil
}

func (s *AuthService) noteFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.NoteFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
