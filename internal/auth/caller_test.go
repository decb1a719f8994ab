package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestParseCaller(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		token, err := IssueToken(Caller{ID: "admin-1", Role: RoleAdmin}, secret, time.Hour)
		require.NoError(t, err)

		caller, err := ParseCaller(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", caller.ID)
		assert.True(t, caller.IsAdmin())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ParseCaller("", secret)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := IssueToken(Caller{ID: "u-1"}, []byte("other"), time.Hour)
		require.NoError(t, err)

		_, err = ParseCaller(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := IssueToken(Caller{ID: "u-1"}, secret, -time.Minute)
		require.NoError(t, err)

		_, err = ParseCaller(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NoExpiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1"}).SignedString(secret)
		require.NoError(t, err)

		_, err = ParseCaller(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NoSubject", func(t *testing.T) {
		token, err := IssueToken(Caller{Role: RoleAdmin}, secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseCaller(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "u-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(secret)
		require.NoError(t, err)

		_, err = ParseCaller(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestEmptySecretIsRejected(t *testing.T) {
	_, err := IssueToken(Caller{ID: "x", Role: RoleAdmin}, []byte(""), time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	for _, key := range [][]byte{nil, {}} {
		caller, err := ParseCaller(forged, key)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, ErrEmptySecret)
		assert.Equal(t, Caller{}, caller)
	}
}

func TestCallerContext(t *testing.T) {
	_, ok := CallerFrom(context.Background())
	assert.False(t, ok)

	ctx := WithCaller(context.Background(), Caller{ID: "u-1", Role: "user"})
	c, ok := CallerFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", c.ID)
	assert.False(t, c.IsAdmin())
}
