package password

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateURLSafeToken creates a cryptographically secure random token of the
// specified byte length, returned base64url-encoded without padding.
// Used for refresh-token jti values.
func GenerateURLSafeToken(length int) (string, error) {
	bytes, err := generateRandomBytes(length)
	if err != nil {
		return "", fmt.Errorf("password: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// HashSHA256 returns the SHA-256 hex digest of the input string.
// Deterministic, used for at-rest comparison of refresh tokens
// (store the hash, compare hashes, never store raw tokens).
func HashSHA256(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
