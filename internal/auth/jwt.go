package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidShareToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidShareToken = errors.New("invalid share token")

// ShareClaims defines the claims carried by an event share link.
type ShareClaims struct {
	EventID string `json:"eventId"`
	jwt.RegisteredClaims
}

// ShareSigner issues and verifies the signed tokens embedded in share links and QR codes.
type ShareSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewShareSigner creates a signer. A zero ttl issues tokens that never expire.
func NewShareSigner(secret string, ttl time.Duration) *ShareSigner {
	return &ShareSigner{key: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateShareToken creates a new JWT for a given event.
func (s *ShareSigner) GenerateShareToken(eventID string) (string, error) {
	now := s.now()
	claims := &ShareClaims{
		EventID: eventID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  eventID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateShareToken parses a share token and returns the event id it refers to.
func (s *ShareSigner) ValidateShareToken(tokenStr string) (string, error) {
	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	if !token.Valid || claims.EventID == "" {
		return "", ErrInvalidShareToken
	}
	return claims.EventID, nil
}

// RandomSecret returns a fresh 256-bit signing key, hex encoded.
func RandomSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
