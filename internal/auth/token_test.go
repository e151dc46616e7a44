package auth

import (
	"testing"

	"github.com/patientfirst/crm-backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "jdoe",
		Email:    "jdoe@example.com",
		RoleID:   3,
		Role:     domain.RoleAgent,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 1, "instance-a")

	token, expiresAt, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("expected non-zero expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleAgent {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleAgent)
	}
	if claims.Instance != "instance-a" {
		t.Errorf("Instance = %q, want instance-a", claims.Instance)
	}
}

func TestTokenRejectedAfterRestart(t *testing.T) {
	// Tokens minted by one process instance must not survive into the
	// next: the marker changes and every outstanding session dies.
	first := NewTokenManager("secret", 1, "instance-a")
	second := NewTokenManager("secret", 1, "instance-b")

	token, _, err := first.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := second.ParseToken(token); err == nil {
		t.Fatal("expected token from previous instance to be rejected")
	}
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 1, "instance-a")
	verifier := NewTokenManager("secret-b", 1, "instance-a")

	token, _, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected token with wrong signature to be rejected")
	}
}

func TestTokenRejectedWhenMalformed(t *testing.T) {
	tm := NewTokenManager("secret", 1, "instance-a")
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
