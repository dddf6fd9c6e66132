package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("my-password")
	require.NoError(t, err)
	assert.NotEqual(t, "my-password", hash)

	assert.True(t, VerifyPassword(hash, "my-password"))
	assert.False(t, VerifyPassword(hash, "other-password"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("my-password")
	require.NoError(t, err)
	second, err := HashPassword("my-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
