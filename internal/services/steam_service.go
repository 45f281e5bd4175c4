package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

var (
	steamLoginPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_]*[a-zA-Z0-9]$`)
	steamLinkPattern  = regexp.MustCompile(`^(https?://)?(s\.team/p/[A-Za-z0-9_-]+/[A-Za-z0-9_-]+)$`)
)

const (
	steamMaxRetries    = 20
	steamInitialDelay  = time.Second
	steamBackoffFactor = 2
)

const (
	msgBadLogin = "Проверьте правильность логина"
	msgBadLink  = "Неверная ссылка"
	msgNoTopUp  = "Нет возможности пополнить данный аккаунт, если вы уверены, " +
		"что регион вашего аккаунта верный - повторите попытку позже."
)

// IsValidSteamLogin проверяет синтаксис логина: 3-32 символа, без
// подчёркивания в начале и в конце.
func IsValidSteamLogin(login string) bool {
	if len(login) < 3 || len(login) > 32 {
		return false
	}
	return steamLoginPattern.MatchString(login)
}

// SteamService опрашивает внешний сервис, который проверяет, принимает ли
// steam-аккаунт пополнение.
type SteamService struct {
	Client  *http.Client
	BaseURL string
	Token   string

	// retryDelay подменяется в тестах, чтобы не ждать реальный бэкофф.
	RetryDelay time.Duration
}

type steamCheckStart struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
}

type steamCheckResult struct {
	Status   string `json:"status"`
	Response struct {
		Success bool `json:"success"`
	} `json:"response"`
}

func (s *SteamService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Service: "steam", StatusCode: resp.StatusCode, Message: string(body)}
	}

	return json.Unmarshal(body, out)
}

// CheckLogin прогоняет полную проверку: синтаксис, запуск проверки на внешнем
// сервисе, опрос результата с удвоением задержки до 20 попыток.
func (s *SteamService) CheckLogin(ctx context.Context, login string) (models.SteamCheckResponse, error) {
	if !IsValidSteamLogin(login) {
		return models.SteamCheckResponse{Success: false, Error: msgBadLogin}, nil
	}

	var start steamCheckStart
	startURL := fmt.Sprintf("%scheck_steam_login?api_key=%s&steam_login=%s&steam_value=26",
		s.BaseURL, s.Token, url.QueryEscape(login))
	if err := s.getJSON(ctx, startURL, &start); err != nil {
		return models.SteamCheckResponse{}, err
	}
	if !start.Success {
		return models.SteamCheckResponse{Success: false, Error: msgBadLogin}, nil
	}

	delay := s.RetryDelay
	if delay == 0 {
		delay = steamInitialDelay
	}

	var result steamCheckResult
	resultURL := fmt.Sprintf("%sget_steam_response?api_key=%s&trans_id=%s",
		s.BaseURL, s.Token, url.QueryEscape(start.RequestID))
	for attempt := 0; attempt < steamMaxRetries; attempt++ {
		if err := s.getJSON(ctx, resultURL, &result); err != nil {
			return models.SteamCheckResponse{}, err
		}
		if result.Status != "process" {
			break
		}

		select {
		case <-ctx.Done():
			return models.SteamCheckResponse{}, ctx.Err()
		case <-time.After(delay):
		}
		delay *= steamBackoffFactor
	}

	if result.Status == "ready" && result.Response.Success {
		return models.SteamCheckResponse{Success: true}, nil
	}
	return models.SteamCheckResponse{Success: false, Error: msgNoTopUp}, nil
}

// CheckSteamLink проверяет ссылку на steam-подарок. Без походов по сети.
func CheckSteamLink(link string) models.SteamCheckResponse {
	if !steamLinkPattern.MatchString(link) {
		return models.SteamCheckResponse{Success: false, Error: msgBadLink}
	}
	return models.SteamCheckResponse{Success: true}
}
