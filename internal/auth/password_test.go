package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlainVerifier(t *testing.T) {
	v, err := NewPasswordVerifier("plain", 0)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}
	if !v.Matches("admin123", "admin123") {
		t.Fatal("expected exact match to pass")
	}
	for _, supplied := range []string{"wrong", "Admin123", "admin123 ", ""} {
		if v.Matches("admin123", supplied) {
			t.Fatalf("%q should not match", supplied)
		}
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	v, err := NewPasswordVerifier("bcrypt", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}
	if !v.Matches(hash, "admin123") {
		t.Fatal("expected hash to match")
	}
	if v.Matches(hash, "wrong") {
		t.Fatal("wrong password matched")
	}
	if v.Matches("admin123", "admin123") {
		t.Fatal("plaintext stored secret must not match in bcrypt mode")
	}
}

func TestNewPasswordVerifierUnknownMode(t *testing.T) {
	if _, err := NewPasswordVerifier("sha1", bcrypt.MinCost); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestBcryptVerifierDecoy(t *testing.T) {
	v, err := NewBcryptVerifier(bcrypt.MinCost + 1)
	if err != nil {
		t.Fatalf("NewBcryptVerifier: %v", err)
	}
	cost, err := bcrypt.Cost(v.decoy)
	if err != nil || cost != bcrypt.MinCost+1 {
		t.Fatalf("decoy should be a bcrypt hash at the configured cost, got %d %v", cost, err)
	}
	v.Reject("admin123")
	PlainVerifier{}.Reject("admin123")

	if _, err := NewBcryptVerifier(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("expected error for invalid cost")
	}
}
