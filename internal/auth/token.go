package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/dinhviettung/citizen-registry/internal/domain"
)

var (
	// ErrMalformed covers unparsable tokens, bad signatures and foreign algorithms.
	ErrMalformed = errors.New("token malformed")
	// ErrExpired is returned for correctly signed tokens past their expiry.
	ErrExpired = errors.New("token expired")
)

// DefaultLifetime applies when a non-positive lifetime is configured.
const DefaultLifetime = time.Hour

// Claims describes the JWT payload.
type Claims struct {
	UserID   int64  `json:"userId"`
	RoleID   int64  `json:"roleId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity returns the request identity carried by the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, RoleID: c.RoleID, Username: c.Username}
}

// TokenManager issues and verifies HS256 session tokens. It holds no per-token state
// and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultLifetime
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Lifetime reports the configured token lifetime.
func (tm *TokenManager) Lifetime() time.Duration {
	return tm.ttl
}

// Issue signs a token for the identity, valid from now until now+lifetime.
func (tm *TokenManager) Issue(id domain.Identity) (string, *Claims, error) {
	issuedAt := tm.now()
	claims := &Claims{
		UserID:   id.UserID,
		RoleID:   id.RoleID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// Verify checks signature and expiry and returns the embedded claims. The token is
// valid while now <= exp.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	if tm.now().After(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return claims, nil
}
