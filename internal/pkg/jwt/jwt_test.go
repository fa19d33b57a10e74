package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, "User")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "User" {
		t.Errorf("expected role User, got %s", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).GenerateToken(1, "User")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := New("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := New("test-secret", -time.Minute).GenerateToken(1, "User")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := New("test-secret", -time.Minute).ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := New("test-secret", time.Hour).ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for malformed input")
	}
}
