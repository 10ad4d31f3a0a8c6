package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "secret124"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_Bounds(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret123"))
}

func TestBurnCompare_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { BurnCompare("whatever") })
}
