package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dinhviettung/citizen-registry/internal/domain"
)

// CredentialRepository looks up user accounts.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)
}

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// FindByUsername matches the username exactly. It returns ErrNotFound when no account has it.
func (r *credentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	const query = `
        SELECT user_id, username, password_hash, full_name, role_id
        FROM user_account WHERE username = $1`

	var cred domain.Credential
	if err := r.db.QueryRowContext(ctx, query, username).Scan(
		&cred.UserID,
		&cred.Username,
		&cred.StoredSecret,
		&cred.FullName,
		&cred.RoleID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}
