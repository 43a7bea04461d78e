package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

// JWTService signs and verifies session tokens with HS256. Tokens carry the
// resolved identity (id, role, userType, email) and are never persisted.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret is required")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{secret: []byte(secret), expiry: expiry}, nil
}

func (s *JWTService) Issue(claims outbound.TokenClaims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"role":     claims.Role,
		"userType": string(claims.UserType),
		"email":    claims.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiry).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign failed: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, outbound.ErrTokenExpired
		}
		return nil, outbound.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, outbound.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, outbound.ErrTokenInvalid
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, outbound.ErrTokenInvalid
	}
	role, _ := claims["role"].(string)
	userType, _ := claims["userType"].(string)
	email, _ := claims["email"].(string)

	return &outbound.TokenClaims{
		ID:       id,
		Role:     role,
		UserType: entity.UserType(userType),
		Email:    email,
	}, nil
}
