package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword computes a bcrypt hash at the default cost for storage on the
// user row. OAuth-only users carry no hash at all.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
