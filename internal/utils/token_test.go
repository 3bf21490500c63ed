package utils

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAdmissionTokenRoundTrip(t *testing.T) {
	tok, err := NewAdmissionToken(testSecret, 42, 365*24*time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	id, err := ParseAdmissionToken(testSecret, tok)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if id != 42 {
		t.Errorf("expected registration id 42, got %d", id)
	}
}

func TestAdmissionTokenTampered(t *testing.T) {
	tok, err := NewAdmissionToken(testSecret, 7, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	// Flip a single character of the signature.
	b := []byte(tok)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}
	if _, err := ParseAdmissionToken(testSecret, string(b)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestAdmissionTokenWrongSecret(t *testing.T) {
	tok, err := NewAdmissionToken(testSecret, 7, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseAdmissionToken("other-secret", tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestAdmissionTokenExpired(t *testing.T) {
	tok, err := NewAdmissionToken(testSecret, 7, -time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseAdmissionToken(testSecret, tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAdmissionTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseAdmissionToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestAdminSessionRoundTrip(t *testing.T) {
	tok, err := NewAdminSession(testSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	if err := VerifyAdminSession(testSecret, tok); err != nil {
		t.Errorf("verify session: %v", err)
	}
}

func TestAdmissionTokenIsNotAdminSession(t *testing.T) {
	// The two token kinds must not be interchangeable: a QR token
	// carries no admin claim and a session carries no registration.
	adm, err := NewAdmissionToken(testSecret, 9, time.Hour)
	if err != nil {
		t.Fatalf("issue admission token: %v", err)
	}
	if err := VerifyAdminSession(testSecret, adm); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("admission token accepted as admin session")
	}
	sess, err := NewAdminSession(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	if _, err := ParseAdmissionToken(testSecret, sess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("admin session accepted as admission token")
	}
}
