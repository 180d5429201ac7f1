package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dinhviettung/citizen-registry/internal/config"
)

// PasswordVerifier compares a supplied password with a stored secret.
type PasswordVerifier interface {
	Matches(stored, supplied string) bool
	// Reject does the work of a failed Matches for a username with no account.
	Reject(supplied string)
}

// PlainVerifier compares the stored secret as a literal password. Accounts seeded with
// plaintext secrets only authenticate in this mode.
type PlainVerifier struct{}

func (PlainVerifier) Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func (PlainVerifier) Reject(supplied string) {
	subtle.ConstantTimeCompare([]byte(missingAccountSecret), []byte(supplied))
}

const missingAccountSecret = "citizen-registry:no-such-account"

// BcryptVerifier treats the stored secret as a bcrypt hash.
type BcryptVerifier struct {
	decoy []byte
}

// NewBcryptVerifier precomputes a decoy hash at cost for Reject.
func NewBcryptVerifier(cost int) (*BcryptVerifier, error) {
	decoy, err := bcrypt.GenerateFromPassword([]byte(missingAccountSecret), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt decoy: %w", err)
	}
	return &BcryptVerifier{decoy: decoy}, nil
}

func (v *BcryptVerifier) Matches(stored, supplied string) bool {
	return ComparePassword(stored, supplied) == nil
}

func (v *BcryptVerifier) Reject(supplied string) {
	_ = bcrypt.CompareHashAndPassword(v.decoy, []byte(supplied))
}

// NewPasswordVerifier returns the verifier for a configured mode. cost only applies to
// bcrypt.
func NewPasswordVerifier(mode string, cost int) (PasswordVerifier, error) {
	switch mode {
	case config.PasswordModePlain, "":
		return PlainVerifier{}, nil
	case config.PasswordModeBcrypt:
		return NewBcryptVerifier(cost)
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
