package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"assetwars/internal/game"
	"assetwars/internal/service"
)

func TestWriteDomainErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid params", game.ErrInvalidParameters, http.StatusBadRequest},
		{"zero amount", game.ErrZeroAmount, http.StatusBadRequest},
		{"insufficient credits", game.ErrInsufficientCredits, http.StatusBadRequest},
		{"slippage", game.ErrSlippageExceeded, http.StatusBadRequest},
		{"unauthorized", game.ErrUnauthorized, http.StatusForbidden},
		{"game paused", game.ErrGamePaused, http.StatusServiceUnavailable},
		{"treasury paused", game.ErrTreasuryPaused, http.StatusServiceUnavailable},
		{"pool not ready", game.ErrPoolNotReady, http.StatusServiceUnavailable},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"not initialized", service.ErrNotInitialized, http.StatusNotFound},
		{"duplicate key", service.ErrDuplicateIdempotency, http.StatusConflict},
		{"already initialized", service.ErrAlreadyInitialized, http.StatusConflict},
		{"already owned", game.ErrAlreadyOwned, http.StatusConflict},
		{"upgrade in progress", game.ErrUpgradeInProgress, http.StatusConflict},
		{"cooldown", game.ErrCooldownNotExpired, http.StatusConflict},
		{"not at risk", game.ErrAssetNotAtRisk, http.StatusConflict},
		{"tx conflict", service.ErrTxConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tc.err)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer   abc  ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestIdempotencyKeyFallsBackToUUID(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/v1/work", nil)
	r.Header.Set("Idempotency-Key", "key-1")
	if got := idempotencyKey(r); got != "key-1" {
		t.Fatalf("idempotencyKey = %q, want key-1", got)
	}

	r = httptest.NewRequest(http.MethodPost, "/v1/work", nil)
	first := idempotencyKey(r)
	second := idempotencyKey(r)
	if first == "" || second == "" {
		t.Fatal("expected generated keys")
	}
	if first == second {
		t.Fatal("expected fresh key per call without header")
	}
}
