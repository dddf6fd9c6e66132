package util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	other, err := GenerateResetToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateAdminCode(t *testing.T) {
	code, err := GenerateAdminCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)

	for _, r := range code {
		assert.Contains(t, adminCodeCharset, string(r))
	}
}

func TestGenerateTempPassword(t *testing.T) {
	password, err := GenerateTempPassword(8)
	require.NoError(t, err)
	assert.Len(t, password, 8)

	other, err := GenerateTempPassword(8)
	require.NoError(t, err)
	assert.NotEqual(t, password, other)
}
