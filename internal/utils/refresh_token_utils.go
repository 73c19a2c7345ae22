package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashRefreshSecret hashes the secret half of a refresh token with bcrypt.
// Only this hash is ever persisted.
func HashRefreshSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckRefreshSecret compares a presented secret with its stored hash.
func CheckRefreshSecret(secret, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret)) == nil
}

// SplitRefreshToken splits a bearer-visible "tokenID.secret" refresh token
// into its parts.
func SplitRefreshToken(raw string) (tokenID, secret string, err error) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed refresh token")
	}
	return parts[0], parts[1], nil
}
