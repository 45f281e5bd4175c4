package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type OAuthHandler struct {
	Service *services.OAuthService
}

// StartTelegram отправляет браузер на страницу авторизации телеграма.
func (h *OAuthHandler) StartTelegram(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Service.LoginURL(), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) StartTelegramConnect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Service.ConnectURL(), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) TelegramCallback(w http.ResponseWriter, r *http.Request) {
	var data models.TelegramCallback
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.Service.Login(r.Context(), data)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSignature) {
			http.Error(w, "Invalid data from Telegram", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.OAuthTokenResponse{Token: token})
}

func (h *OAuthHandler) TelegramConnectCallback(w http.ResponseWriter, r *http.Request) {
	var data models.TelegramConnectCallback
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Connect(r.Context(), data)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSignature) {
			http.Error(w, "Invalid data from Telegram", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if status := tokenErrorStatus(err); status != http.StatusInternalServerError {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
