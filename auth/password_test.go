package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, CheckPassword("pw123", hash))
	assert.False(t, CheckPassword("pw456", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_IdempotentOnOwnOutput(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	rehash, err := HashPassword(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, rehash)

	// the passthrough hash still verifies the original plaintext
	assert.True(t, CheckPassword("pw123", rehash))
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.True(t, IsHashed(hash))
	assert.False(t, IsHashed("pw123"))
	assert.False(t, IsHashed(""))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "Empty", hash: ""},
		{name: "Plaintext", hash: "not-a-hash"},
		{name: "Truncated", hash: "$2a$12$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CheckPassword("pw123", tt.hash))
		})
	}
}
