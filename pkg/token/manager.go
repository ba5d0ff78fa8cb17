// Package token issues and verifies the HS256 bearer tokens used by the API.
// The signing secret is injected at construction and immutable afterwards;
// rotating it invalidates every previously issued token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const defaultTTL = 24 * time.Hour

// Claims is the payload embedded in every issued token. Subject carries the
// user ID; Role is the role granted at issuance time.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the given user with an absolute expiry of
// now + ttl.
func (m *Manager) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token string. It fails with ErrInvalidToken
// when the encoding is malformed, the signature does not match, the signing
// algorithm is not HS256, or the expiry has elapsed. On success the embedded
// claims are returned unchanged.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL returns the lifetime applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
