package dto

import (
	"time"

	"github.com/dinhviettung/citizen-registry/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message   string            `json:"message"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      domain.PublicUser `json:"user"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
