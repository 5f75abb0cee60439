package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Success(t *testing.T) {
	// Act
	hash, err := HashPassword(testPassword)

	// Assert
	require.NoError(t, err, "HashPassword should not return error for valid password")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, testPassword, hash, "Hash should be different from password")
	assert.True(t, strings.HasPrefix(hash, "$2"), "Hash should be a bcrypt hash")
}

func TestVerifyPassword_Correct(t *testing.T) {
	// Arrange
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	// Act & Assert
	assert.True(t, VerifyPassword(testPassword, hash), "Password should match its hash")
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	// Arrange
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	// Act & Assert
	assert.False(t, VerifyPassword(testWrongPassword, hash), "Wrong password should not match hash")
}

func TestVerifyPassword_FailsClosed(t *testing.T) {
	// Malformed hashes must count as a non-match, not an error
	assert.False(t, VerifyPassword(testPassword, ""), "Empty hash should not match")
	assert.False(t, VerifyPassword(testPassword, "not-a-bcrypt-hash"), "Garbage hash should not match")
	assert.False(t, VerifyPassword(testPassword, "$argon2id$v=19$m=65536$..."), "Foreign hash format should not match")
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	// Act
	hash1, err1 := HashPassword(testPassword)
	hash2, err2 := HashPassword(testPassword)

	// Assert
	require.NoError(t, err1, "First HashPassword should not fail")
	require.NoError(t, err2, "Second HashPassword should not fail")
	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes due to unique salt")
}

func TestHashPassword_TruncatesAt72Bytes(t *testing.T) {
	// Arrange: two passwords that share the first 72 bytes
	prefix := strings.Repeat("a", 72)
	passwordX := prefix + "x"
	passwordY := prefix + "y"

	// Act
	hash, err := HashPassword(passwordX)

	// Assert: bcrypt only sees the first 72 bytes, so both verify
	require.NoError(t, err, "HashPassword should handle passwords longer than 72 bytes")
	assert.True(t, VerifyPassword(passwordX, hash), "Original password should match")
	assert.True(t, VerifyPassword(passwordY, hash), "Password differing after byte 72 should also match")
	assert.True(t, VerifyPassword(prefix, hash), "The 72-byte prefix alone should match")
}

func TestHashPassword_BoundaryLengths(t *testing.T) {
	// Passwords at and just under the bcrypt limit must round-trip
	for _, n := range []int{71, 72} {
		password := strings.Repeat("b", n)

		hash, err := HashPassword(password)
		require.NoError(t, err, "HashPassword should handle %d-byte password", n)
		assert.True(t, VerifyPassword(password, hash), "%d-byte password should match its hash", n)
	}
}

func TestVerifyPassword_DistinctShortPasswords(t *testing.T) {
	// Arrange
	hash, err := HashPassword("password-one")
	require.NoError(t, err)

	// Assert: no cross-matching for ordinary passwords
	assert.True(t, VerifyPassword("password-one", hash))
	assert.False(t, VerifyPassword("password-two", hash))
}

func TestHashPassword_UnicodeCharacters(t *testing.T) {
	unicodePasswords := []string{
		"Contraseña123!",
		"Şifre123!",
		"Пароль123",
	}

	for _, password := range unicodePasswords {
		t.Run(password, func(t *testing.T) {
			hash, err := HashPassword(password)
			require.NoError(t, err, "HashPassword should handle unicode characters")
			assert.True(t, VerifyPassword(password, hash), "Unicode password should match its hash")
		})
	}
}
