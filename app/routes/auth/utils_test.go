package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "rep@example.com", "Ravi Kumar", "class-a")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("Expected token to validate, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected user id user-1, got %s", claims.UserID)
	}
	if claims.Scope != "class-a" {
		t.Errorf("Expected scope class-a, got %s", claims.Scope)
	}
	if claims.Email != "rep@example.com" || claims.Name != "Ravi Kumar" {
		t.Errorf("Unexpected identity claims: %s / %s", claims.Email, claims.Name)
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatal("Expected error for malformed token")
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	claims := JWTClaims{
		UserID: "user-1",
		Scope:  "class-a",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTSecret())
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	_, err = ValidateJWT(token)
	if err == nil {
		t.Fatal("Expected expired token to be rejected")
	}
	// The failure is about the token, not the signing key.
	if errors.Is(err, jwt.ErrInvalidKey) {
		t.Errorf("Expected a token validation error, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("Expected password to match its hash")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("Expected wrong password to be rejected")
	}
}
