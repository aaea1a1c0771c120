package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/premiereye/salesops/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStaticProvider(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		token, err := StaticProvider("abc")(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("Failure - Empty token", func(t *testing.T) {
		_, err := StaticProvider("")(context.Background())
		assert.True(t, domain.IsUnauthorized(err))
	})
}

func TestExpiry(t *testing.T) {
	t.Run("Success - JWT with exp", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})

		got, err := Expiry(token)
		require.NoError(t, err)
		assert.True(t, exp.Equal(got))
	})

	t.Run("JWT without exp yields zero time", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "user"})

		got, err := Expiry(token)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("Failure - Opaque token", func(t *testing.T) {
		_, err := Expiry("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestNewProviderWithExpiredToken(t *testing.T) {
	// An expired credential still flows through; the upstream is the
	// authority, this side only warns.
	token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	provider := NewProvider(token, nil)

	got, err := provider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, got)
}
