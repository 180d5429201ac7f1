package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNewTranslatorResolvesLanguage(t *testing.T) {
	cases := map[string]language.Tag{
		"vi":    Vietnamese,
		"en":    English,
		"en-US": English,
		"":      Vietnamese,
		"xx!":   Vietnamese,
	}
	for input, want := range cases {
		if got := NewTranslator(input).Language(); got != want {
			t.Fatalf("NewTranslator(%q).Language() = %v, want %v", input, got, want)
		}
	}
}

func TestTranslate(t *testing.T) {
	vi := NewTranslator("vi")
	if got := vi.T(KeyInvalidCredentials); got != "Sai tài khoản hoặc mật khẩu" {
		t.Fatalf("unexpected vi text %q", got)
	}
	en := NewTranslator("en")
	if got := en.T(KeyInvalidCredentials); got != "Invalid username or password" {
		t.Fatalf("unexpected en text %q", got)
	}
	if got := vi.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key should echo, got %q", got)
	}

	var missing *Translator
	if got := missing.T(KeyTokenMissing); got != KeyTokenMissing {
		t.Fatalf("nil translator should echo key, got %q", got)
	}
}

func TestEveryKeyHasBothLanguages(t *testing.T) {
	keys := []string{
		KeyLoginSucceeded, KeyLoginMissingFields, KeyInvalidCredentials, KeyLoginStoreFailure,
		KeyLoginTooManyAttempts, KeyTokenMissing, KeyTokenInvalid, KeyCitizenMissingFields,
		KeyCitizenInvalidField, KeyCitizenAdded, KeyCitizenAddFailure, KeyCitizenNotFound,
		KeyCitizenSearchFailure, KeyCitizenDeleted, KeyCitizenDeleteHandled, KeyCitizenDeleteNotFound,
		KeyCitizenDeleteFailure, KeyInvalidPayload, KeyRateLimited, KeyRouteNotFound,
		KeyInternalError, KeyDependencyDown,
	}
	vi, en := NewTranslator("vi"), NewTranslator("en")
	for _, key := range keys {
		if vi.T(key) == key {
			t.Fatalf("missing vi text for %s", key)
		}
		if en.T(key) == key {
			t.Fatalf("missing en text for %s", key)
		}
	}
}
