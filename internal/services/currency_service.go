package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

// CurrencyService держит курсы валют в памяти. Снимок обновляется фоновой
// задачей раз в 12 часов, читатели получают последнее удачное значение.
type CurrencyService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string

	mu       sync.Mutex
	snapshot models.CurrencySnapshot
}

func NewCurrencyService(client *http.Client, baseURL, apiKey string) *CurrencyService {
	return &CurrencyService{
		Client:  client,
		BaseURL: baseURL,
		APIKey:  apiKey,
		snapshot: models.CurrencySnapshot{
			KZT:        0.189490353604604,
			USD:        98.12,
			UpdateTime: 1738793134,
		},
	}
}

func (s *CurrencyService) Snapshot() models.CurrencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

type currencyRateResponse struct {
	Data struct {
		Value      float64 `json:"value"`
		UpdateTime int64   `json:"update_time"`
	} `json:"data"`
}

func (s *CurrencyService) fetchRate(ctx context.Context, code string) (currencyRateResponse, error) {
	var parsed currencyRateResponse

	url := fmt.Sprintf("%s?api_key=%s&code=%s", s.BaseURL, s.APIKey, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return parsed, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return parsed, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return parsed, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parsed, &UpstreamError{Service: "currency", StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return parsed, err
	}
	return parsed, nil
}

// Refresh пересчитывает снимок из свежих курсов RUB и KZT.
func (s *CurrencyService) Refresh(ctx context.Context) error {
	rub, err := s.fetchRate(ctx, "RUB")
	if err != nil {
		return err
	}
	kzt, err := s.fetchRate(ctx, "KZT")
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = models.CurrencySnapshot{
		KZT:        rub.Data.Value / 100,
		USD:        rub.Data.Value / kzt.Data.Value,
		UpdateTime: kzt.Data.UpdateTime,
	}
	s.mu.Unlock()

	return nil
}
