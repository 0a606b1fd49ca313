package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SecureRandomInt returns a uniform value in [0, max).
func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

func GenerateRandomString(length int) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(alphanumeric)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = alphanumeric[num.Int64()]
	}

	return string(result)
}

// GenerateResetToken mints the opaque token handed back by the
// forgot-password flow.
func GenerateResetToken() string {
	return GenerateRandomString(32)
}
