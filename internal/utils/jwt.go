package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	jwt.RegisteredClaims
}

// SigningMethod resolves an HMAC signing method by its configured name
// (HS256, HS384, HS512). Unknown names fall back to HS256.
func SigningMethod(algorithm string) jwt.SigningMethod {
	if m := jwt.GetSigningMethod(algorithm); m != nil {
		if _, ok := m.(*jwt.SigningMethodHMAC); ok {
			return m
		}
	}
	return jwt.SigningMethodHS256
}

// GenerateToken issues a signed token with sub set to the user's email.
func GenerateToken(email, secretKey string, method jwt.SigningMethod, expiresIn time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(method, claims).SignedString([]byte(secretKey))
}

// ValidateToken verifies signature and expiry. Malformed or expired tokens
// come back as an error, never a panic.
func ValidateToken(tokenString, secretKey string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secretKey), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
