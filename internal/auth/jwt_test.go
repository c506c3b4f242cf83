package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user_id = %v, want %v", claims.UserID, userID)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want %q", claims.Username, "alice")
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "bob", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("ParseJWT with wrong secret should fail")
	}
}

func TestParseJWTExpired(t *testing.T) {
	// Negative lifetimes fall back to 24h, so use a tiny positive one.
	token, err := GenerateJWT("secret", uuid.New(), "carol", time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Error("garbage token should not parse")
	}
}
