package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmailSend(t *testing.T) {
	var got emailCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-email/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"success": true, "email_id": 15}`))
	}))
	defer srv.Close()

	s := &EmailService{Client: srv.Client(), BaseURL: srv.URL}

	ok, err := s.Send(context.Background(), EmailTemplateTransaction, "user@example.com",
		"Успешная покупка", map[string]interface{}{"order_uuid": "abc"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if !ok {
		t.Error("Send() = false; want true")
	}
	if got.TemplateType != EmailTemplateTransaction || got.RecipientEmail != "user@example.com" {
		t.Errorf("request = %+v", got)
	}
	if got.EmailData["order_uuid"] != "abc" {
		t.Errorf("email_data = %v", got.EmailData)
	}
}

func TestEmailSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mailer down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := &EmailService{Client: srv.Client(), BaseURL: srv.URL}

	ok, err := s.Send(context.Background(), EmailTemplatePasswordReset, "user@example.com", "x", nil)
	if ok {
		t.Error("Send() = true on upstream failure")
	}
	ue, isUpstream := err.(*UpstreamError)
	if !isUpstream {
		t.Fatalf("error type = %T; want *UpstreamError", err)
	}
	if ue.Service != "email" || ue.StatusCode != http.StatusBadGateway {
		t.Errorf("upstream error = %+v", ue)
	}
}
