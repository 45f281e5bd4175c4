package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

func TestNewManagerEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.NewToken(42, models.TokenTypePasswordReset, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("subject mismatch: %q", claims.Subject)
	}
	if claims.Type != models.TokenTypePasswordReset {
		t.Errorf("type mismatch: %q", claims.Type)
	}

	id, err := Subject(claims)
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Errorf("subject id mismatch: %d", id)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m, _ := NewManager("test-secret")

	token, err := m.NewToken(7, "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Parse(token); !errors.Is(err, models.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseWrongKey(t *testing.T) {
	m1, _ := NewManager("key-one")
	m2, _ := NewManager("key-two")

	token, err := m1.NewToken(7, "", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m2.Parse(token); !errors.Is(err, models.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParseBearer(t *testing.T) {
	m, _ := NewManager("test-secret")
	token, err := m.NewToken(5, "", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		desc   string
		header string
		want   error
	}{
		{"missing header", "", models.ErrMissingAuth},
		{"wrong scheme", "Basic " + token, models.ErrMalformedAuth},
		{"no token", "Bearer", models.ErrMalformedAuth},
		{"garbage token", "Bearer not-a-token", models.ErrTokenMalformed},
		{"valid", "Bearer " + token, nil},
	}

	for _, tt := range tests {
		_, err := m.ParseBearer(tt.header)
		if tt.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.desc, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.desc, err, tt.want)
		}
	}
}

func TestRandomPassword(t *testing.T) {
	p := RandomPassword(12)
	if len(p) != 12 {
		t.Fatalf("expected 12 chars, got %d", len(p))
	}
	for _, c := range p {
		if !strings.ContainsRune(passwordCharset, c) {
			t.Fatalf("unexpected char %q in %q", c, p)
		}
	}
	// пароли гостевых аккаунтов не должны совпадать между вызовами
	seen := map[string]bool{p: true}
	for i := 0; i < 4; i++ {
		next := RandomPassword(12)
		if seen[next] {
			t.Fatalf("password repeated: %q", next)
		}
		seen[next] = true
	}
}
