package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

func TestLavaSign(t *testing.T) {
	s := &LavaService{Token: "lavatoken"}

	body := `{"comment":"Оплата товара ord-1","customFields":null,"excludeService":[],"expire":60,` +
		`"failUrl":"https://shop.example/ok","hookUrl":null,"includeService":[],"orderId":"ord-1",` +
		`"shopId":"shop-1","successUrl":"https://shop.example/ok","sum":100}`
	want := "e07a948b29d5a2261bb787606d59d3a9d52ca637aee9d84c0288dffffb7a4df6"

	if got := s.sign([]byte(body)); got != want {
		t.Errorf("sign() = %s; want %s", got, want)
	}
}

func TestLavaCreatePayment(t *testing.T) {
	var gotBody []byte
	var gotSignature string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("Signature")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"pay-1","url":"https://lava.example/pay/pay-1"}}`))
	}))
	defer srv.Close()

	s := &LavaService{
		Client:     srv.Client(),
		CreateURL:  srv.URL,
		Token:      "lavatoken",
		ShopID:     "shop-1",
		SuccessURL: "https://shop.example/ok",
	}

	url, err := s.CreatePayment(context.Background(), 100, "ord-1")
	if err != nil {
		t.Fatalf("CreatePayment() error: %v", err)
	}
	if url != "https://lava.example/pay/pay-1" {
		t.Errorf("redirect url = %s", url)
	}

	// Подпись считается ровно над отправленными байтами
	wantBody := `{"comment":"Оплата товара ord-1","customFields":null,"excludeService":[],"expire":60,` +
		`"failUrl":"https://shop.example/ok","hookUrl":null,"includeService":[],"orderId":"ord-1",` +
		`"shopId":"shop-1","successUrl":"https://shop.example/ok","sum":100}`
	if string(gotBody) != wantBody {
		t.Errorf("request body = %s; want %s", gotBody, wantBody)
	}
	if gotSignature != s.sign(gotBody) {
		t.Errorf("Signature header = %s; want %s", gotSignature, s.sign(gotBody))
	}
}

func TestLavaCreatePaymentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "shop is disabled", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := &LavaService{Client: srv.Client(), CreateURL: srv.URL, Token: "lavatoken"}

	_, err := s.CreatePayment(context.Background(), 50, "ord-2")
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
	ue, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("error type = %T; want *UpstreamError", err)
	}
	if ue.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", ue.StatusCode)
	}
}

func TestLavaStoreWebhookBadPayTime(t *testing.T) {
	s := &LavaService{}

	_, err := s.StoreWebhook(context.Background(), models.LavaWebhookRequest{
		InvoiceID: "inv-1",
		Status:    models.LavaStatusSuccess,
		PayTime:   "not-a-date",
		Amount:    100,
		Credited:  97,
	})
	if err == nil {
		t.Fatal("expected error for malformed pay_time")
	}
}
