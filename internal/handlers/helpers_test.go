package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

func TestTokenErrorStatus(t *testing.T) {
	t.Run("auth failures map to 401", func(t *testing.T) {
		for _, err := range []error{
			models.ErrMissingAuth,
			models.ErrMalformedAuth,
			models.ErrTokenExpired,
			models.ErrTokenUsed,
		} {
			if status := tokenErrorStatus(err); status != http.StatusUnauthorized {
				t.Fatalf("%v: expected %d, got %d", err, http.StatusUnauthorized, status)
			}
		}
	})

	t.Run("malformed token maps to 403", func(t *testing.T) {
		if status := tokenErrorStatus(models.ErrTokenMalformed); status != http.StatusForbidden {
			t.Fatalf("expected %d, got %d", http.StatusForbidden, status)
		}
	})

	t.Run("wrapped errors unwrap", func(t *testing.T) {
		err := fmt.Errorf("parse session: %w", models.ErrTokenExpired)
		if status := tokenErrorStatus(err); status != http.StatusUnauthorized {
			t.Fatalf("expected %d, got %d", http.StatusUnauthorized, status)
		}
	})

	t.Run("defaults to 500", func(t *testing.T) {
		if status := tokenErrorStatus(errors.New("generic error")); status != http.StatusInternalServerError {
			t.Fatalf("expected %d, got %d", http.StatusInternalServerError, status)
		}
	})
}

func TestUpstreamStatus(t *testing.T) {
	status, ok := upstreamStatus(&services.UpstreamError{Service: "lava", StatusCode: http.StatusUnprocessableEntity})
	if !ok || status != http.StatusBadGateway {
		t.Fatalf("expected %d, got %d (ok=%v)", http.StatusBadGateway, status, ok)
	}

	if _, ok := upstreamStatus(errors.New("generic error")); ok {
		t.Fatal("generic error reported as upstream")
	}
}
