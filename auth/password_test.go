package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	// salt embedded in the hash makes every call unique
	hash2, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// must fail closed, never panic or error out
	assert.False(t, CheckPassword("secret1", ""))
	assert.False(t, CheckPassword("secret1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("secret1", "$2a$garbage"))
}
