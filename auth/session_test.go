package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/localstore"
)

func signedToken(t *testing.T, email string, expiresAt int64) string {
	t.Helper()
	claims := &Claims{
		Email:          email,
		Role:           "user",
		StandardClaims: jwt.StandardClaims{ExpiresAt: expiresAt},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestSessionAuthenticated(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, localstore.NewMemoryStore())

	assert.False(t, session.IsAuthenticated(), "zero session must be anonymous")

	token := signedToken(t, "shopper@example.com", time.Now().Add(time.Hour).Unix())
	require.NoError(t, session.SetToken(ctx, token))
	assert.True(t, session.IsAuthenticated())

	claims, err := session.Claims()
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", claims.Email)
}

func TestSessionExpiredTokenIsAnonymous(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, localstore.NewMemoryStore())

	token := signedToken(t, "shopper@example.com", time.Now().Add(-time.Minute).Unix())
	require.NoError(t, session.SetToken(ctx, token))

	assert.False(t, session.IsAuthenticated())
}

func TestSessionGarbageTokenIsAnonymous(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, localstore.NewMemoryStore())

	require.NoError(t, session.SetToken(ctx, "not-a-jwt"))

	assert.False(t, session.IsAuthenticated())
	_, err := session.Claims()
	assert.Error(t, err)
}

func TestSessionPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()

	token := signedToken(t, "shopper@example.com", time.Now().Add(time.Hour).Unix())
	first := NewSession(ctx, store)
	require.NoError(t, first.SetToken(ctx, token))

	second := NewSession(ctx, store)
	assert.Equal(t, token, second.Token())
	assert.True(t, second.IsAuthenticated())
}

func TestSessionClear(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	session := NewSession(ctx, store)

	token := signedToken(t, "shopper@example.com", time.Now().Add(time.Hour).Unix())
	require.NoError(t, session.SetToken(ctx, token))
	require.NoError(t, session.Clear(ctx))

	assert.Empty(t, session.Token())
	assert.False(t, session.IsAuthenticated())

	reloaded := NewSession(ctx, store)
	assert.Empty(t, reloaded.Token(), "cleared token must not come back from the store")
}
