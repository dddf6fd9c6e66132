package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const (
	adminCodeCharset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateResetToken creates an opaque, unguessable token of n random bytes,
// hex-encoded.
func GenerateResetToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateAdminCode creates a 6-character uppercase alphanumeric code used
// to bootstrap the first admin account of a company.
func GenerateAdminCode() (string, error) {
	return randomString(adminCodeCharset, 6)
}

// GenerateTempPassword creates a random one-time password for a freshly
// provisioned employee account.
func GenerateTempPassword(length int) (string, error) {
	return randomString(tempPasswordCharset, length)
}

func randomString(charset string, length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
