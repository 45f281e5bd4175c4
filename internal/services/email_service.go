package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Email template types understood by the mailer service.
const (
	EmailTemplatePasswordReset   = "password_reset"
	EmailTemplateEmailReset      = "email_reset"
	EmailTemplateTransaction     = "transaction"
	EmailTemplateActivateProfile = "activate_profile"
)

type EmailService struct {
	Client  *http.Client
	BaseURL string
}

type emailCreateRequest struct {
	TemplateType   string                 `json:"template_type"`
	RecipientEmail string                 `json:"recipient_email"`
	Subject        string                 `json:"subject"`
	EmailData      map[string]interface{} `json:"email_data"`
}

type emailCreateResponse struct {
	Success bool `json:"success"`
	EmailID int  `json:"email_id"`
}

// Send отправляет письмо через внешний почтовый сервис. Возвращает флаг
// success из ответа сервиса.
func (s *EmailService) Send(ctx context.Context, templateType, recipient, subject string, data map[string]interface{}) (bool, error) {
	body, err := json.Marshal(emailCreateRequest{
		TemplateType:   templateType,
		RecipientEmail: recipient,
		Subject:        subject,
		EmailData:      data,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/create-email/", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &UpstreamError{Service: "email", StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var parsed emailCreateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return false, err
	}

	return parsed.Success, nil
}
