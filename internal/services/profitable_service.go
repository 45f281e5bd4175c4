package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ProfitableService инициирует платёж у партнёрской платёжной системы и
// строит URL страницы оплаты на её стороне.
type ProfitableService struct {
	Client  *http.Client
	InitURL string
	PayURL  string
}

type profitableInitResponse struct {
	UUID string `json:"uuid"`
}

func (s *ProfitableService) InitPayment(ctx context.Context, invoiceUUID, email string, amount float64) (string, error) {
	form := url.Values{
		"gamemoneta_invoice_uuid": {invoiceUUID},
		"email":                   {email},
		"amount":                  {strconv.FormatFloat(amount, 'f', -1, 64)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.InitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Service: "profitable", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var parsed profitableInitResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.UUID == "" {
		return "", &UpstreamError{Service: "profitable", StatusCode: resp.StatusCode, Message: "failed to retrieve uuid from payment service"}
	}

	return fmt.Sprintf("%s?uuid=%s", s.PayURL, parsed.UUID), nil
}
