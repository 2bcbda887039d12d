// Package token holds the bearer token attached to advisory API requests.
// Token issuance and refresh live elsewhere; this package only stores the
// value, inspects its expiry, and clears it when the service reports 401.
package token

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Source is a mutable bearer-token holder safe for concurrent use.
type Source struct {
	mu    sync.Mutex
	token string
}

// NewSource creates a Source holding the given token. An empty token is
// valid; requests simply go out unauthenticated.
func NewSource(token string) *Source {
	return &Source{token: token}
}

// Token returns the current token, or empty after Clear.
func (s *Source) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear drops the token. Called when the service answers 401, mirroring the
// web client's interceptor.
func (s *Source) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// ExpiresAt returns the token's exp claim when the token is a JWT carrying
// one. The signature is not verified; only the server can do that, and the
// claim is used solely to warn before a guaranteed 401.
func (s *Source) ExpiresAt() (time.Time, bool) {
	s.mu.Lock()
	raw := s.token
	s.mu.Unlock()
	if raw == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without a readable exp claim are never reported expired.
func (s *Source) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && exp.Before(now)
}
