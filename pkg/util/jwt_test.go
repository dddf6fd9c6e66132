package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@test.local", "admin", 7, testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestValidateToken(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@test.local", "admin", 7, testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@test.local", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, uint(7), claims.CompanyID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@test.local", "employee", 7, testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@test.local", "employee", 7, testSecret, -time.Minute, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}
