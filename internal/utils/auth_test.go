package utils

import (
	"testing"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

const testSecret = "test-secret"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "s3cret!" {
		t.Error("Hash should not equal the plain password")
	}

	if !CheckPasswordHash("s3cret!", hash) {
		t.Error("Correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("Wrong password accepted")
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	user := &models.User{
		ID:        "7d8f2a61-0000-0000-0000-000000000001",
		Email:     "owner@example.com",
		Role:      "admin",
		CompanyID: 42,
	}

	access, refresh, err := GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("Expected non-empty tokens")
	}

	claims, err := ValidateToken(access, testSecret)
	if err != nil {
		t.Fatalf("Failed to validate access token: %v", err)
	}

	if claims["email"] != user.Email {
		t.Errorf("email claim = %v, want %s", claims["email"], user.Email)
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}
	// JSON numbers decode as float64
	if cid, _ := claims["company_id"].(float64); uint(cid) != user.CompanyID {
		t.Errorf("company_id claim = %v, want %d", claims["company_id"], user.CompanyID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@b.c", CompanyID: 1}
	access, _, err := GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	if _, err := ValidateToken(access, "other-secret"); err == nil {
		t.Error("Token validated with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", testSecret); err == nil {
		t.Error("Garbage token validated")
	}
}
