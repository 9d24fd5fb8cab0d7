package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func TestNewAndParse(t *testing.T) {
	signed, err := New(testSecret, "ada", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Parse(testSecret, signed)
	require.NoError(t, err)

	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	// Expiry must be 24 hours out, give or take test runtime.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 23*time.Hour)
	assert.LessOrEqual(t, remaining, TTL)
}

func TestParseWrongSecret(t *testing.T) {
	signed, err := New(testSecret, "ada", "admin")
	require.NoError(t, err)

	_, err = Parse([]byte("a-different-secret"), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	// Sign a token that expired an hour ago with the right secret.
	claims := Claims{
		Username: "ada",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(testSecret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	// alg=none tokens must never verify, whatever the payload says.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Username: "mallory",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(testSecret, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
