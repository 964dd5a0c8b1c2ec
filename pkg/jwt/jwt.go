package jwt

import (
	"errors"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID    uuid.UUID   `json:"user_id"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	TokenType TokenType   `json:"token_type"`
	TokenID   string      `json:"token_id"`
	jwt.RegisteredClaims
}

// JWTService signs and validates access and refresh tokens. The two token
// families use separate secrets so rotating one does not invalidate the
// other.
type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(userID uuid.UUID, email string, role entity.Role) (string, string, error) {
	return s.generate(userID, email, role, AccessToken, s.config.AccessExpiry, s.config.AccessSecret)
}

func (s *JWTService) GenerateRefreshToken(userID uuid.UUID, email string, role entity.Role) (string, string, error) {
	return s.generate(userID, email, role, RefreshToken, s.config.RefreshExpiry, s.config.RefreshSecret)
}

func (s *JWTService) generate(userID uuid.UUID, email string, role entity.Role, tokenType TokenType, expiry time.Duration, secret string) (string, string, error) {
	tokenID := uuid.New().String()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

// ValidateAccessToken parses and verifies an access token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.config.AccessSecret)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.config.RefreshSecret)
}

func (s *JWTService) validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
