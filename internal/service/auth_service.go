package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dinhviettung/citizen-registry/internal/auth"
	"github.com/dinhviettung/citizen-registry/internal/domain"
	"github.com/dinhviettung/citizen-registry/internal/events"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/observability"
	"github.com/dinhviettung/citizen-registry/internal/repository"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

// Login outcomes recorded in metrics.
const (
	loginOutcomeSuccess            = "success"
	loginOutcomeBadRequest         = "bad_request"
	loginOutcomeInvalidCredentials = "invalid_credentials"
	loginOutcomeStoreUnavailable   = "store_unavailable"
	loginOutcomeThrottled          = "throttled"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.PublicUser
}

// AuthService coordinates the login flow.
type AuthService struct {
	credentials repository.CredentialRepository
	tokens      *auth.TokenManager
	passwords   auth.PasswordVerifier
	throttle    auth.LoginThrottle
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service. Throttle,
// Dispatcher, Metrics and Logger are optional.
type AuthDependencies struct {
	Credentials repository.CredentialRepository
	Tokens      *auth.TokenManager
	Passwords   auth.PasswordVerifier
	Throttle    auth.LoginThrottle
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		credentials: deps.Credentials,
		tokens:      deps.Tokens,
		passwords:   deps.Passwords,
		throttle:    deps.Throttle,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
	if s.passwords == nil {
		s.passwords = auth.PlainVerifier{}
	}
	if s.throttle == nil {
		s.throttle = auth.NoopThrottle{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Login authenticates username/password and issues a session token. Unknown usernames
// and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		s.metrics.RecordLogin(loginOutcomeBadRequest)
		return nil, apperrors.NewBadRequest(i18n.KeyLoginMissingFields)
	}

	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
	}
	if blocked {
		s.metrics.RecordLogin(loginOutcomeThrottled)
		s.publish(ctx, events.EventLoginThrottled, events.Actor{Username: username}, nil)
		return nil, apperrors.NewTooManyRequests(i18n.KeyLoginTooManyAttempts)
	}

	cred, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.passwords.Reject(password)
			return nil, s.rejectLogin(ctx, username)
		}
		s.metrics.RecordLogin(loginOutcomeStoreUnavailable)
		s.logger.Error("credential lookup failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(i18n.KeyLoginStoreFailure, err)
	}

	if !s.passwords.Matches(cred.StoredSecret, password) {
		return nil, s.rejectLogin(ctx, username)
	}

	identity := domain.Identity{UserID: cred.UserID, RoleID: cred.RoleID, Username: cred.Username}
	token, claims, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.logger.Warn("login throttle reset failed", zap.Error(err))
	}
	s.metrics.RecordLogin(loginOutcomeSuccess)
	s.publish(ctx, events.EventLoginSucceeded, events.Actor{
		UserID:   cred.UserID,
		RoleID:   cred.RoleID,
		Username: cred.Username,
	}, nil)

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      cred.Public(),
	}, nil
}

func (s *AuthService) rejectLogin(ctx context.Context, username string) error {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn("login throttle record failed", zap.Error(err))
	}
	s.metrics.RecordLogin(loginOutcomeInvalidCredentials)
	s.publish(ctx, events.EventLoginFailed, events.Actor{Username: username}, nil)
	return apperrors.NewInvalidCredentials()
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, events.Event{Type: eventType, Actor: actor, Payload: payload}); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
