package jwt

import (
	"testing"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "patient@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected non-empty token id")
	}

	claims, err := service.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "patient@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != entity.RolePatient {
		t.Errorf("expected role %s, got %s", entity.RolePatient, claims.Role)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("expected token type %s, got %s", AccessToken, claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Errorf("expected token id %s, got %s", tokenID, claims.TokenID)
	}
}

func TestRefreshTokenRejectedByAccessValidator(t *testing.T) {
	service := newTestService()

	token, _, err := service.GenerateRefreshToken(uuid.New(), "patient@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	// Signed with the refresh secret, so the access validator must fail.
	if _, err := service.ValidateAccessToken(token); err == nil {
		t.Fatal("expected refresh token to fail access validation")
	}

	claims, err := service.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("expected token type %s, got %s", RefreshToken, claims.TokenType)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "patient@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	if _, err := service.ValidateAccessToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestValidateTamperedToken(t *testing.T) {
	service := newTestService()

	token, _, err := service.GenerateAccessToken(uuid.New(), "patient@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := service.ValidateAccessToken(tampered); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
}
