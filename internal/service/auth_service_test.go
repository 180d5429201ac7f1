package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dinhviettung/citizen-registry/internal/auth"
	"github.com/dinhviettung/citizen-registry/internal/domain"
	"github.com/dinhviettung/citizen-registry/internal/events"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/repository"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

type fakeCredentials struct {
	records map[string]domain.Credential
	err     error
	calls   int
}

func (f *fakeCredentials) FindByUsername(_ context.Context, username string) (*domain.Credential, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cred, ok := f.records[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cred, nil
}

type fakeThrottle struct {
	blocked  bool
	failures map[string]int
	resets   []string
}

func (f *fakeThrottle) Blocked(context.Context, string) (bool, error) { return f.blocked, nil }

func (f *fakeThrottle) RecordFailure(_ context.Context, username string) error {
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[username]++
	return nil
}

func (f *fakeThrottle) Reset(_ context.Context, username string) error {
	f.resets = append(f.resets, username)
	return nil
}

func adminStore() *fakeCredentials {
	return &fakeCredentials{records: map[string]domain.Credential{
		"admin": {UserID: 1, Username: "admin", RoleID: 1, FullName: "Quản trị viên", StoredSecret: "admin123"},
	}}
}

func newAuthService(store *fakeCredentials, throttle auth.LoginThrottle, dispatcher events.Dispatcher) *AuthService {
	return NewAuthService(AuthDependencies{
		Credentials: store,
		Tokens:      auth.NewTokenManager("test-secret", time.Hour),
		Passwords:   auth.PlainVerifier{},
		Throttle:    throttle,
		Dispatcher:  dispatcher,
	})
}

func domainError(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %T %v", err, err)
	}
	return de
}

func TestLoginSuccess(t *testing.T) {
	throttle := &fakeThrottle{}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := newAuthService(adminStore(), throttle, dispatcher)

	result, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := domain.PublicUser{FullName: "Quản trị viên", RoleID: 1, Username: "admin"}
	if result.User != want {
		t.Fatalf("user = %+v, want %+v", result.User, want)
	}

	claims, err := svc.TokenManager().Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Identity() != (domain.Identity{UserID: 1, RoleID: 1, Username: "admin"}) {
		t.Fatalf("unexpected claims %+v", claims.Identity())
	}
	if !result.ExpiresAt.Equal(claims.ExpiresAt.Time) {
		t.Fatalf("expiry mismatch: %v vs %v", result.ExpiresAt, claims.ExpiresAt.Time)
	}
	if len(throttle.resets) != 1 || throttle.resets[0] != "admin" {
		t.Fatalf("expected throttle reset for admin, got %v", throttle.resets)
	}
	if len(published) != 1 || published[0].Actor.UserID != 1 {
		t.Fatalf("expected one login_succeeded event, got %+v", published)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	throttle := &fakeThrottle{}
	svc := newAuthService(adminStore(), throttle, nil)

	_, wrongPassword := svc.Login(context.Background(), "admin", "wrong")
	_, unknownUser := svc.Login(context.Background(), "nobody", "admin123")
	_, wrongCase := svc.Login(context.Background(), "Admin", "admin123")

	first := domainError(t, wrongPassword)
	for name, err := range map[string]error{"unknown user": unknownUser, "wrong case": wrongCase} {
		de := domainError(t, err)
		if de.Code != first.Code || de.Message != first.Message || de.HTTPStatus != first.HTTPStatus {
			t.Fatalf("%s: %+v differs from wrong password %+v", name, de, first)
		}
	}
	if first.Code != apperrors.CodeInvalidCredentials || first.Message != i18n.KeyInvalidCredentials {
		t.Fatalf("unexpected error %+v", first)
	}
	if throttle.failures["admin"] != 1 || throttle.failures["nobody"] != 1 {
		t.Fatalf("failures should be counted for known and unknown users: %v", throttle.failures)
	}
}

func TestLoginMissingFieldsSkipsStore(t *testing.T) {
	store := adminStore()
	svc := newAuthService(store, nil, nil)

	for _, creds := range [][2]string{{"", "admin123"}, {"admin", ""}, {"", ""}} {
		_, err := svc.Login(context.Background(), creds[0], creds[1])
		if de := domainError(t, err); de.Code != apperrors.CodeBadRequest {
			t.Fatalf("%v: expected bad request, got %s", creds, de.Code)
		}
	}
	if store.calls != 0 {
		t.Fatalf("store must not be queried, got %d calls", store.calls)
	}
}

func TestLoginStoreFaultIsGeneric(t *testing.T) {
	store := &fakeCredentials{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	svc := newAuthService(store, nil, nil)

	_, err := svc.Login(context.Background(), "admin", "admin123")
	de := domainError(t, err)
	if de.Code != apperrors.CodeStoreUnavailable || de.HTTPStatus != 500 {
		t.Fatalf("unexpected error %+v", de)
	}
	if strings.Contains(de.Message, "connection refused") {
		t.Fatalf("message leaks driver error: %q", de.Message)
	}
	if !errors.Is(err, store.err) {
		t.Fatal("cause should remain available for logging")
	}
}

func TestLoginThrottled(t *testing.T) {
	store := adminStore()
	svc := newAuthService(store, &fakeThrottle{blocked: true}, nil)

	_, err := svc.Login(context.Background(), "admin", "admin123")
	if de := domainError(t, err); de.Code != apperrors.CodeTooManyRequests {
		t.Fatalf("expected too many requests, got %+v", de)
	}
	if store.calls != 0 {
		t.Fatal("throttled login must not reach the store")
	}
}

type countingVerifier struct {
	matches int
	rejects int
}

func (v *countingVerifier) Matches(stored, supplied string) bool {
	v.matches++
	return stored == supplied
}

func (v *countingVerifier) Reject(string) { v.rejects++ }

func TestLoginUnknownUserComparesAgainstDecoy(t *testing.T) {
	verifier := &countingVerifier{}
	svc := NewAuthService(AuthDependencies{
		Credentials: adminStore(),
		Tokens:      auth.NewTokenManager("test-secret", time.Hour),
		Passwords:   verifier,
	})

	if _, err := svc.Login(context.Background(), "nobody", "admin123"); err == nil {
		t.Fatal("expected unknown user to fail")
	}
	if verifier.rejects != 1 || verifier.matches != 0 {
		t.Fatalf("unknown user should run one decoy comparison, got rejects=%d matches=%d", verifier.rejects, verifier.matches)
	}

	if _, err := svc.Login(context.Background(), "admin", "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
	if verifier.rejects != 1 || verifier.matches != 1 {
		t.Fatalf("known user should compare the stored secret, got rejects=%d matches=%d", verifier.rejects, verifier.matches)
	}
}
