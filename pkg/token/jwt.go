// Package token issues and verifies the JSON Web Tokens that carry a session.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and verifies session tokens with HMAC-SHA256.
type JWTManager struct {
	secretKey       []byte
	accessTokenDur  time.Duration
	refreshTokenDur time.Duration
}

// SessionClaims is the token payload. ID (jti) identifies the token for revocation.
type SessionClaims struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a JWTManager.
func NewJWTManager(secret string, accessTokenExpireHours, refreshTokenExpireDays int) *JWTManager {
	return &JWTManager{
		secretKey:       []byte(secret),
		accessTokenDur:  time.Hour * time.Duration(accessTokenExpireHours),
		refreshTokenDur: time.Duration(refreshTokenExpireDays) * 24 * time.Hour,
	}
}

// GenerateToken issues an access token for username.
func (m *JWTManager) GenerateToken(username string) (string, error) {
	return m.generate(username, KindAccess, m.accessTokenDur)
}

// GenerateRefreshToken issues a longer-lived refresh token for username.
func (m *JWTManager) GenerateRefreshToken(username string) (string, error) {
	return m.generate(username, KindRefresh, m.refreshTokenDur)
}

func (m *JWTManager) generate(username, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// VerifyToken checks the signature and expiry of tokenString and returns its claims.
func (m *JWTManager) VerifyToken(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims, ok := parsed.Claims.(*SessionClaims); ok && parsed.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// VerifyKind is VerifyToken plus a check that the token is of the given kind.
func (m *JWTManager) VerifyKind(tokenString, kind string) (*SessionClaims, error) {
	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: want %s token, got %q", ErrInvalidToken, kind, claims.Kind)
	}
	return claims, nil
}
