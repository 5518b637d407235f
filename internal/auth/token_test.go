package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "kpom-test")

	token, err := m.Mint("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected user_id user-123, got %s", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestTokenManager_MissingToken(t *testing.T) {
	m := NewTokenManager("test-secret", "kpom-test")

	_, err := m.Verify("")
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken for empty string, got %v", err)
	}
}

func TestTokenManager_ExpiredTokenIsInvalidNotMissing(t *testing.T) {
	m := NewTokenManager("test-secret", "kpom-test")

	token, err := m.mintWithExpiry("user-123", "alice@example.com", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if errors.Is(err, ErrNoToken) {
		t.Error("expired token must not be reported as missing")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	minter := NewTokenManager("secret-a", "kpom-test")
	verifier := NewTokenManager("secret-b", "kpom-test")

	token, err := minter.Mint("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenManager_TamperedToken(t *testing.T) {
	m := NewTokenManager("test-secret", "kpom-test")

	token, err := m.Mint("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
