// Package auth holds the client's view of the authenticated session: the
// bearer token persisted in the local store and the claims parsed out of it.
// It is the explicit auth-state provider the cart repository is constructed
// with, instead of every call re-reading a global token.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"go-storefront/localstore"
)

// TokenKey is the local-store key the session token lives under
const TokenKey = "auth_token"

// Claims mirrors the token claims the storefront API issues
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// Session keeps the current bearer token, mirrored to the local store so a
// login survives process restarts. The zero session is anonymous.
type Session struct {
	store localstore.Store

	mu    sync.RWMutex
	token string
}

// NewSession loads any persisted token from the store and returns a Session
func NewSession(ctx context.Context, store localstore.Store) *Session {
	s := &Session{store: store}
	if data, err := store.Get(ctx, TokenKey); err == nil {
		s.token = string(data)
	}
	return s
}

// Token returns the current bearer token, or "" when anonymous
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores a new bearer token, typically right after login
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return s.store.Set(ctx, TokenKey, []byte(token))
}

// Clear forgets the token, locally and in the store
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return s.store.Delete(ctx, TokenKey)
}

// Claims parses the claims out of the current token. The signature is not
// verified; only the server holds the signing key, and the server re-checks
// it on every request anyway. A missing or unparseable token returns an
// error.
func (s *Session) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, jwt.NewValidationError("no session token", jwt.ValidationErrorMalformed)
	}
	claims := &Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsAuthenticated reports whether a token is present, parseable and not
// expired. Anything else counts as anonymous: an expired token behaves like
// no token at all.
func (s *Session) IsAuthenticated() bool {
	claims, err := s.Claims()
	if err != nil {
		return false
	}
	if claims.ExpiresAt > 0 && time.Now().Unix() >= claims.ExpiresAt {
		return false
	}
	return true
}
