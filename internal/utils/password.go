package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// VerifyAdminPassword compares a submitted password against the
// configured admin credential. When a bcrypt hash is configured it is
// preferred; the plain-text secret is only a fallback for local
// development setups without a hash.
func VerifyAdminPassword(plain, hash, fallbackPlain string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	if fallbackPlain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(fallbackPlain)) == 1
}

// HashAdminPassword produces a bcrypt hash suitable for the
// ADMIN_PASSWORD_HASH environment variable.
func HashAdminPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
