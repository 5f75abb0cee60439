package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-jwt-signing"
	testEmail  = "admin@sitecel.cl"
)

func TestGenerateToken_Success(t *testing.T) {
	// Act
	token, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, time.Hour)

	// Assert
	require.NoError(t, err, "GenerateToken should not return error")
	assert.NotEmpty(t, token, "Token should not be empty")
}

func TestValidateToken_Success(t *testing.T) {
	// Arrange
	token, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, time.Hour)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	// Act
	claims, err := ValidateToken(token, testSecret)

	// Assert
	require.NoError(t, err, "ValidateToken should accept a fresh token")
	assert.Equal(t, testEmail, claims.Subject, "Subject should carry the user email")
}

func TestValidateToken_Expired(t *testing.T) {
	// Arrange: token that expired an hour ago
	token, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, -time.Hour)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	// Act
	claims, err := ValidateToken(token, testSecret)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken, "Expired token should return ErrExpiredToken")
	assert.Nil(t, claims, "Claims should be nil for expired token")
}

func TestValidateToken_ZeroTTL(t *testing.T) {
	// A zero lifetime token is already expired when validated
	token, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, 0)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken, "Zero-TTL token should be rejected as expired")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	token, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, time.Hour)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	// Act
	claims, err := ValidateToken(token, "a-completely-different-secret")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidToken, "Token signed with another key should be invalid")
	assert.Nil(t, claims, "Claims should be nil for invalid signature")
}

func TestValidateToken_Malformed(t *testing.T) {
	malformedTokens := []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
		"eyJhbGciOiJIUzI1NiJ9.tampered",
	}

	for _, tokenString := range malformedTokens {
		claims, err := ValidateToken(tokenString, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken, "Malformed token %q should be invalid", tokenString)
		assert.Nil(t, claims, "Claims should be nil for malformed token")
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	// Arrange: swap out the payload while keeping the original signature
	original, err := GenerateToken(testEmail, testSecret, jwt.SigningMethodHS256, time.Hour)
	require.NoError(t, err)
	forged, err := GenerateToken("attacker@evil.com", "attacker-secret", jwt.SigningMethodHS256, time.Hour)
	require.NoError(t, err)
	_ = original

	// Act & Assert
	_, err = ValidateToken(forged, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken, "Token signed by another party should not validate")
}

func TestSigningMethod_Resolution(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected jwt.SigningMethod
	}{
		{"HS256", "HS256", jwt.SigningMethodHS256},
		{"HS384", "HS384", jwt.SigningMethodHS384},
		{"HS512", "HS512", jwt.SigningMethodHS512},
		{"RS256 falls back", "RS256", jwt.SigningMethodHS256},
		{"unknown falls back", "bogus", jwt.SigningMethodHS256},
		{"empty falls back", "", jwt.SigningMethodHS256},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SigningMethod(tc.input))
		})
	}
}

func TestGenerateToken_RoundTripAcrossAlgorithms(t *testing.T) {
	for _, algorithm := range []string{"HS256", "HS384", "HS512"} {
		t.Run(algorithm, func(t *testing.T) {
			token, err := GenerateToken(testEmail, testSecret, SigningMethod(algorithm), time.Hour)
			require.NoError(t, err, "GenerateToken should not fail for %s", algorithm)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err, "ValidateToken should accept %s token", algorithm)
			assert.Equal(t, testEmail, claims.Subject)
		})
	}
}
