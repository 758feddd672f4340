// Package jwtauth implements the token service: issuance and verification
// of signed, expiring authentication tokens bound to a user identity.
package jwtauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when no explicit TTL is configured.
const DefaultTTL = 600 * time.Second

// Service issues and verifies HS256-signed tokens. The signing secret is
// process-wide configuration; rotating it invalidates all outstanding
// tokens. No revocation list is maintained.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service with the given secret and TTL.
// A non-positive TTL falls back to DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a signed token carrying the user identity and an
// expiration timestamp.
func (s *Service) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the signature and expiry of the given token and
// returns the embedded user identity. Any failure, including malformed
// input, a bad signature, an expired token or a missing claim, is
// normalized to ok=false. It never panics on attacker-supplied input.
func (s *Service) VerifyToken(tokenStr string) (userID string, ok bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["user_id"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
