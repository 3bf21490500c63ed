package utils // package utils provides token issuing/verification and other small helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed payload or expiry. Callers must not learn which
// of the three it was, since a failing token is treated as potential
// tampering.
var ErrInvalidToken = errors.New("invalid or tampered token")

// NewAdmissionToken signs an HS256 JWT binding to a single registration
// ID. The token is the full content of the attendee's QR code, so it is
// deliberately small: just the registration ID claim plus the standard
// exp/iat pair. The TTL is long (on the order of a year) because the QR
// code must stay valid until the event day.
func NewAdmissionToken(secret string, regID uint64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"rid": regID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAdmissionToken verifies a scanned QR string and returns the
// registration ID it binds to. Verification is pure (no store lookup)
// so a forged token is rejected before any database work happens.
func ParseAdmissionToken(secret, token string) (uint64, error) {
	claims, err := parseHS256(secret, token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	// Numeric JSON claims decode as float64.
	rid, ok := claims["rid"].(float64)
	if !ok || rid <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(rid), nil
}

// NewAdminSession signs a short-lived HS256 JWT asserting administrator
// identity. It carries no registration binding, only the admin marker
// claim; possession of a valid session token is the sole admin
// credential after login.
func NewAdminSession(secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"admin": true,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyAdminSession checks that the given token is a live admin
// session signed with our secret. It returns ErrInvalidToken otherwise.
func VerifyAdminSession(secret, token string) error {
	claims, err := parseHS256(secret, token)
	if err != nil {
		return ErrInvalidToken
	}
	if admin, ok := claims["admin"].(bool); !ok || !admin {
		return ErrInvalidToken
	}
	return nil
}

// parseHS256 parses and validates a token signed with HMAC-SHA256 and
// returns its claims. Tokens signed with any other method are rejected
// so an attacker cannot downgrade the algorithm.
func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
