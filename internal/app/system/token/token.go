// internal/app/system/token/token.go

// Package token issues and verifies the platform's session tokens.
//
// Tokens are stateless, self-contained HS256 JWTs carrying the user's
// id and role plus issued-at/expiry timestamps. There is no server-side
// session store; a token is valid iff its signature verifies against
// the process-wide secret and it has not expired.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Verification failures. Verify never panics on attacker-supplied
// input; every failure mode maps to exactly one of these.
var (
	// ErrMalformed means the token could not be parsed at all.
	ErrMalformed = errors.New("token is malformed")
	// ErrBadSignature means the token parsed but its signature does not
	// verify against the server secret. A token signed with an
	// unexpected algorithm lands here too: WithValidMethods reports it
	// as a signature failure.
	ErrBadSignature = errors.New("token signature is invalid")
	// ErrExpired means the token is past its expiry. An expired token is
	// never valid, regardless of signature.
	ErrExpired = errors.New("token is expired")
)

// Claims is the payload carried by a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim: the user's ObjectID hex.
func (c *Claims) UserID() string { return c.Subject }

// Manager signs and verifies session tokens. The secret is immutable
// process-wide configuration loaded once at startup; a Manager is safe
// for concurrent use.
type Manager struct {
	secret        []byte
	ttl           time.Duration
	refreshWithin time.Duration
}

// NewManager validates the token configuration and returns a Manager.
// refreshWithin controls rotation: Refresh only re-issues a token whose
// remaining validity has fallen under this window. It must be shorter
// than the TTL.
func NewManager(secret string, ttl, refreshWithin time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, errors.New("token secret too short; provide >=32 random chars")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if refreshWithin < 0 || refreshWithin >= ttl {
		return nil, fmt.Errorf("refresh window %v must be shorter than ttl %v", refreshWithin, ttl)
	}
	return &Manager{
		secret:        []byte(secret),
		ttl:           ttl,
		refreshWithin: refreshWithin,
	}, nil
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a new session token for the given user and role. Pure
// computation; no side effects.
func (m *Manager) Issue(userID string, role authz.Role) (string, error) {
	return m.issueAt(userID, string(role), time.Now())
}

func (m *Manager) issueAt(userID, role string, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify checks structural validity, signature, and expiry, in that
// trust order: no claim is used before the signature verifies.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Refresh re-issues a token carrying the same identity claims with a
// renewed expiry, but only when the remaining validity window has
// fallen under the configured refresh threshold. It is a pure function
// of the decoded claims: the bool reports whether a replacement was
// issued.
func (m *Manager) Refresh(claims *Claims) (string, bool, error) {
	if claims == nil || claims.ExpiresAt == nil {
		return "", false, ErrMalformed
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return "", false, ErrExpired
	}
	if remaining > m.refreshWithin {
		return "", false, nil
	}
	tok, err := m.issueAt(claims.Subject, claims.Role, time.Now())
	if err != nil {
		return "", false, err
	}
	return tok, true, nil
}
