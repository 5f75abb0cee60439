package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of the input. Longer passwords are
// truncated to that limit before hashing, matching what the admin UI has
// always stored. Do not "fix" this without re-hashing every user.
const maxPasswordBytes = 72

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword generates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if password matches hash. Any internal error
// (malformed hash, wrong cost header) counts as a non-match.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
	return err == nil
}
