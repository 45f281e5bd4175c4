package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrencyDefaults(t *testing.T) {
	s := NewCurrencyService(nil, "", "")

	snap := s.Snapshot()
	if snap.KZT != 0.189490353604604 {
		t.Errorf("default KZT = %v", snap.KZT)
	}
	if snap.USD != 98.12 {
		t.Errorf("default USD = %v", snap.USD)
	}
	if snap.UpdateTime != 1738793134 {
		t.Errorf("default update_time = %v", snap.UpdateTime)
	}
}

func TestCurrencyRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "key" {
			t.Errorf("api_key = %s", got)
		}
		switch r.URL.Query().Get("code") {
		case "RUB":
			fmt.Fprint(w, `{"data": {"value": 90.0, "update_time": 1756500000}}`)
		case "KZT":
			fmt.Fprint(w, `{"data": {"value": 480.0, "update_time": 1756500100}}`)
		default:
			t.Errorf("unexpected code %s", r.URL.Query().Get("code"))
		}
	}))
	defer srv.Close()

	s := NewCurrencyService(srv.Client(), srv.URL, "key")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	snap := s.Snapshot()
	if math.Abs(snap.KZT-0.9) > 1e-9 {
		t.Errorf("KZT = %v; want 0.9", snap.KZT)
	}
	if math.Abs(snap.USD-0.1875) > 1e-9 {
		t.Errorf("USD = %v; want 0.1875", snap.USD)
	}
	if snap.UpdateTime != 1756500100 {
		t.Errorf("update_time = %v", snap.UpdateTime)
	}
}

func TestCurrencyRefreshKeepsSnapshotOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewCurrencyService(srv.Client(), srv.URL, "key")
	before := s.Snapshot()

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
	if s.Snapshot() != before {
		t.Error("snapshot changed after failed refresh")
	}
}
