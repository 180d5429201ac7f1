package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dinhviettung/citizen-registry/internal/i18n"
)

// Error codes surfaced to clients.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors. Message holds a message catalog key;
// Err carries the internal cause and is never written to a response.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError by code so callers can use errors.Is with a template.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, messageKey string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: messageKey, HTTPStatus: status, Err: err}
}

func NewBadRequest(messageKey string) error {
	return NewDomainError(CodeBadRequest, messageKey, http.StatusBadRequest, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, i18n.KeyInvalidCredentials, http.StatusUnauthorized, nil)
}

// NewStoreUnavailable wraps a store fault behind a generic message.
func NewStoreUnavailable(messageKey string, err error) error {
	return NewDomainError(CodeStoreUnavailable, messageKey, http.StatusInternalServerError, err)
}

func NewUnauthenticated(messageKey string) error {
	return NewDomainError(CodeUnauthenticated, messageKey, http.StatusUnauthorized, nil)
}

func NewForbidden(messageKey string, err error) error {
	return NewDomainError(CodeForbidden, messageKey, http.StatusForbidden, err)
}

func NewNotFound(messageKey string) error {
	return NewDomainError(CodeNotFound, messageKey, http.StatusNotFound, nil)
}

func NewTooManyRequests(messageKey string) error {
	return NewDomainError(CodeTooManyRequests, messageKey, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return NewDomainError(CodeInternal, i18n.KeyInternalError, http.StatusInternalServerError, err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return NewDomainError(CodeInternal, i18n.KeyInternalError, http.StatusInternalServerError, err)
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch err.Code {
	case http.StatusNotFound:
		return NewDomainError(CodeNotFound, i18n.KeyRouteNotFound, err.Code, err)
	case http.StatusTooManyRequests:
		return NewDomainError(CodeTooManyRequests, i18n.KeyRateLimited, err.Code, err)
	}
	if err.Code >= 400 && err.Code < 500 {
		return NewDomainError(CodeBadRequest, i18n.KeyInvalidPayload, err.Code, err)
	}
	return NewDomainError(CodeInternal, i18n.KeyInternalError, err.Code, err)
}
