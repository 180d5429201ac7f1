package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dinhviettung/citizen-registry/internal/api/dto"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/service"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth     *service.AuthService
	messages *i18n.Translator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, messages *i18n.Translator) *AuthHandler {
	return &AuthHandler{auth: authService, messages: messages}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	// Only JSON bodies are read; anything else leaves both fields empty.
	var req dto.LoginRequest
	if len(c.Body()) > 0 && c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewBadRequest(i18n.KeyInvalidPayload)
		}
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message:   h.messages.T(i18n.KeyLoginSucceeded),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}
