// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/models"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers bad signatures and malformed input.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken covers structurally valid tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the identity claims embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role"`
}

// TokenService issues and verifies HS256-signed session tokens. The signing
// key is process-wide configuration.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a time-limited token carrying the user's identity.
func (s *TokenService) Issue(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:      models.RefString(u.ID),
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	})
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string and returns its claims.
// Expired tokens fail with ErrExpiredToken; anything else that does not
// verify fails with ErrInvalidToken. Both are unauthorized to callers, but
// they stay distinguishable.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
