package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestAccessTokenRoundTrip verifies issuing and parsing a token.
func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "nexus", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.NewAccessToken(userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := manager.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}
}

// TestAccessTokenWrongSecret verifies a token signed elsewhere is rejected.
func TestAccessTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "nexus", time.Hour)
	verifier := NewTokenManager("secret-b", "nexus", time.Hour)

	token, _, err := issuer.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := verifier.ParseAccessToken(token); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

// TestAccessTokenExpired verifies expired tokens are rejected.
func TestAccessTokenExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", "nexus", -time.Minute)

	token, _, err := manager.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

// TestAccessTokenWrongIssuer verifies issuer validation.
func TestAccessTokenWrongIssuer(t *testing.T) {
	issuer := NewTokenManager("test-secret", "other-app", time.Hour)
	verifier := NewTokenManager("test-secret", "nexus", time.Hour)

	token, _, err := issuer.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := verifier.ParseAccessToken(token); err == nil {
		t.Fatal("expected wrong issuer to be rejected")
	}
}
