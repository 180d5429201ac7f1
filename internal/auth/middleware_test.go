package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dinhviettung/citizen-registry/internal/domain"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T %v", err, err)
	}
	return domainErr.Code
}

func TestGuardMissingHeaderSkipsVerification(t *testing.T) {
	// A nil token manager panics if Verify is reached.
	gate := NewGate(nil, nil)
	for _, header := range []string{"", "Bearer", "Bearer ", "Bearer  abc", "token-only"} {
		_, err := gate.Guard(header)
		if code := errorCode(t, err); code != apperrors.CodeUnauthenticated {
			t.Fatalf("header %q: expected %s, got %s", header, apperrors.CodeUnauthenticated, code)
		}
	}
}

func TestGuardExpiredAndMalformedAreForbidden(t *testing.T) {
	tm, clock := newTestManager("secret", time.Minute)
	gate := NewGate(tm, nil)

	token, _, err := tm.Issue(domain.Identity{UserID: 3, RoleID: 1, Username: "clerk"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, malformedErr := gate.Guard("Bearer garbage")
	clock.t = clock.t.Add(2 * time.Minute)
	_, expiredErr := gate.Guard("Bearer " + token)

	for name, err := range map[string]error{"malformed": malformedErr, "expired": expiredErr} {
		if code := errorCode(t, err); code != apperrors.CodeForbidden {
			t.Fatalf("%s: expected %s, got %s", name, apperrors.CodeForbidden, code)
		}
	}
	if apperrors.ToDomainError(malformedErr).Message != apperrors.ToDomainError(expiredErr).Message {
		t.Fatal("expired and malformed must share the same client message")
	}
}

func TestGuardTakesSecondSegment(t *testing.T) {
	tm, _ := newTestManager("secret", time.Hour)
	gate := NewGate(tm, nil)
	want := domain.Identity{UserID: 2, RoleID: 1, Username: "admin"}
	token, _, err := tm.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := gate.Guard("Bearer " + token + " trailing")
	if err != nil || got != want {
		t.Fatalf("trailing segments should be ignored: %+v %v", got, err)
	}

	for _, header := range []string{"Bearer a b", "Basic abc"} {
		_, err := gate.Guard(header)
		if code := errorCode(t, err); code != apperrors.CodeForbidden {
			t.Fatalf("header %q: expected %s, got %s", header, apperrors.CodeForbidden, code)
		}
	}
}

func TestHandleAttachesIdentity(t *testing.T) {
	tm, _ := newTestManager("secret", time.Hour)
	gate := NewGate(tm, nil)
	want := domain.Identity{UserID: 9, RoleID: 4, Username: "officer"}
	token, _, err := tm.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	var fromLocals, fromContext domain.Identity
	app.Get("/protected", gate.Handle, func(c *fiber.Ctx) error {
		var ok bool
		if fromLocals, ok = IdentityFromLocals(c); !ok {
			return errors.New("identity missing from locals")
		}
		if fromContext, ok = IdentityFromContext(c.UserContext()); !ok {
			return errors.New("identity missing from context")
		}
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if fromLocals != want || fromContext != want {
		t.Fatalf("identity mismatch: locals=%+v ctx=%+v want=%+v", fromLocals, fromContext, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", resp.StatusCode)
	}
}
