package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	staffID := uuid.New().String()
	email := "test@example.com"

	token, err := GenerateToken(staffID, email, RoleBarista)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	extractedID, extractedEmail, extractedRole, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if extractedID != staffID {
		t.Fatalf("Expected staffID %s, got %s", staffID, extractedID)
	}
	if extractedEmail != email {
		t.Fatalf("Expected email %s, got %s", email, extractedEmail)
	}
	if extractedRole != RoleBarista {
		t.Fatalf("Expected role %s, got %s", RoleBarista, extractedRole)
	}
}

func TestGenerateTokenRequiresStaffID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "test@example.com", RoleBarista); err == nil {
		t.Fatal("expected error for empty staffID")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateToken(uuid.New().String(), "test@example.com", RoleBarista); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken(uuid.New().String(), "test@example.com", RoleManager)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"

	if _, _, _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}
