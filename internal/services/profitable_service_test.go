package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProfitableInitPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("gamemoneta_invoice_uuid"); got != "inv-1" {
			t.Errorf("gamemoneta_invoice_uuid = %s", got)
		}
		if got := r.PostFormValue("email"); got != "user@example.com" {
			t.Errorf("email = %s", got)
		}
		if got := r.PostFormValue("amount"); got != "199.5" {
			t.Errorf("amount = %s", got)
		}
		w.Write([]byte(`{"uuid": "partner-9"}`))
	}))
	defer srv.Close()

	s := &ProfitableService{Client: srv.Client(), InitURL: srv.URL, PayURL: "https://pay.example/checkout"}

	url, err := s.InitPayment(context.Background(), "inv-1", "user@example.com", 199.5)
	if err != nil {
		t.Fatalf("InitPayment() error: %v", err)
	}
	if url != "https://pay.example/checkout?uuid=partner-9" {
		t.Errorf("pay url = %s", url)
	}
}

func TestProfitableInitPaymentNoUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := &ProfitableService{Client: srv.Client(), InitURL: srv.URL, PayURL: "https://pay.example/checkout"}

	_, err := s.InitPayment(context.Background(), "inv-1", "user@example.com", 10)
	if _, ok := err.(*UpstreamError); !ok {
		t.Fatalf("error type = %T; want *UpstreamError", err)
	}
}

func TestProfitableInitPaymentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := &ProfitableService{Client: srv.Client(), InitURL: srv.URL, PayURL: "https://pay.example/checkout"}

	_, err := s.InitPayment(context.Background(), "inv-1", "user@example.com", 10)
	ue, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("error type = %T; want *UpstreamError", err)
	}
	if ue.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", ue.StatusCode)
	}
}
