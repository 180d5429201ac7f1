package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dinhviettung/citizen-registry/internal/domain"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

const identityKey = "auth_identity"

type identityContextKey struct{}

// Gate guards protected routes: it extracts the bearer token, verifies it and attaches
// the caller identity to the request.
type Gate struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewGate constructs the guard.
func NewGate(tokens *TokenManager, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, logger: logger}
}

// Guard resolves the identity for an Authorization header value. A missing credential
// is Unauthenticated; an expired or malformed token is Forbidden.
func (g *Gate) Guard(authorization string) (domain.Identity, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthenticated(i18n.KeyTokenMissing)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, ErrExpired) {
			reason = "expired"
		}
		g.logger.Debug("token rejected", zap.String("reason", reason))
		return domain.Identity{}, apperrors.NewForbidden(i18n.KeyTokenInvalid, err)
	}
	return claims.Identity(), nil
}

// Handle is the fiber form of Guard.
func (g *Gate) Handle(c *fiber.Ctx) error {
	identity, err := g.Guard(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	c.Locals(identityKey, identity)
	c.SetUserContext(ContextWithIdentity(c.UserContext(), identity))
	return c.Next()
}

// IdentityFromLocals retrieves the identity attached by Handle.
func IdentityFromLocals(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// ContextWithIdentity stores the caller identity in ctx.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext extracts the caller identity from ctx.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(domain.Identity)
	return identity, ok
}

// bearerToken returns the second space-separated segment of "Bearer <token>". The scheme
// word is not inspected and trailing segments are ignored.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
