package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
)

type LavaService struct {
	Client     *http.Client
	Webhooks   *repositories.LavaRepository
	CreateURL  string
	Token      string
	ShopID     string
	SuccessURL string
}

// Поля объявлены в лексикографическом порядке json-ключей: encoding/json
// сохраняет порядок полей структуры, и подпись считается ровно над теми же
// байтами, что уходят в запрос.
type lavaCreateRequest struct {
	Comment        string   `json:"comment"`
	CustomFields   *string  `json:"customFields"`
	ExcludeService []string `json:"excludeService"`
	Expire         int      `json:"expire"`
	FailURL        string   `json:"failUrl"`
	HookURL        *string  `json:"hookUrl"`
	IncludeService []string `json:"includeService"`
	OrderID        string   `json:"orderId"`
	ShopID         string   `json:"shopId"`
	SuccessURL     string   `json:"successUrl"`
	Sum            float64  `json:"sum"`
}

type lavaCreateResponse struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

func (s *LavaService) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(s.Token))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// CreatePayment создаёт платёж в lava и возвращает URL для редиректа.
func (s *LavaService) CreatePayment(ctx context.Context, amount float64, orderID string) (string, error) {
	body, err := json.Marshal(lavaCreateRequest{
		Comment:        fmt.Sprintf("Оплата товара %s", orderID),
		ExcludeService: []string{},
		Expire:         60,
		FailURL:        s.SuccessURL,
		IncludeService: []string{},
		OrderID:        orderID,
		ShopID:         s.ShopID,
		SuccessURL:     s.SuccessURL,
		Sum:            amount,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.CreateURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Signature", s.sign(body))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Service: "lava", StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var parsed lavaCreateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if parsed.Data.URL == "" {
		return "", &UpstreamError{Service: "lava", StatusCode: resp.StatusCode, Message: "empty payment url"}
	}

	return parsed.Data.URL, nil
}

// StoreWebhook записывает входящий колбэк как есть. Подпись колбэка lava не
// проверяется; статус счёта меняется только через подписанный change_status.
func (s *LavaService) StoreWebhook(ctx context.Context, req models.LavaWebhookRequest) (models.LavaWebhook, error) {
	payTime, err := time.Parse("2006-01-02 15:04:05", req.PayTime)
	if err != nil {
		return models.LavaWebhook{}, fmt.Errorf("bad pay_time %q: %w", req.PayTime, err)
	}

	return s.Webhooks.InsertWebhook(ctx, models.LavaWebhook{
		InvoiceID:    req.InvoiceID,
		OrderID:      req.OrderID,
		Status:       req.Status,
		PayTime:      payTime,
		Amount:       req.Amount,
		Credited:     req.Credited,
		CustomFields: req.CustomFields,
	})
}
