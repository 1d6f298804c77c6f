package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the hex SHA-256 digest of a refresh token.
// Refresh tokens are stored as digests so a leaked users table cannot be
// replayed against the refresh endpoint.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash checks a raw refresh token against the stored
// digest. The token argument is the plaintext from the cookie, never a hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
