package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter2-hunter2")
	require.NoError(t, err)

	assert.NotContains(t, hash, "hunter2")
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected bcrypt hash, got %q", hash)
}

func TestHashPassword_SaltsPerCall(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-password", first))
	assert.True(t, CheckPassword("same-password", second))
}

func TestCheckPassword_MalformedHashIsNonMatch(t *testing.T) {
	assert.False(t, CheckPassword("anything", ""))
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", "$2a$12$truncated"))
}
