package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "8f14e45f-ceea-467f-a061-eddc0123a5ab"

	token := EncodeToken(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Test case 2: Zero time value
	zeroToken := EncodeToken(time.Time{}, id)
	decodedZero, decodedID2, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero(), "Zero time should round-trip")
	assert.Equal(t, id, decodedID2)
}

func TestDecodeTokenInvalid(t *testing.T) {
	// Not base64
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err, "Invalid base64 should return an error")

	// Base64 but no separator
	_, _, err = DecodeToken("aGVsbG8=") // "hello"
	assert.Error(t, err, "Token without separator should return an error")

	// Valid separator but bad timestamp
	badTime := EncodeToken(time.Now(), "id")[:4] // mangled token
	_, _, err = DecodeToken(badTime)
	assert.Error(t, err)
}
