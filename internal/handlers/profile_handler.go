package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

type ProfileHandler struct {
	Service *services.UserService
	Tokens  *utils.Manager
}

// bearerUserID достаёт id пользователя из заголовка Authorization.
func (h *ProfileHandler) bearerUserID(r *http.Request) (int, error) {
	claims, err := h.Tokens.ParseBearer(r.Header.Get("Authorization"))
	if err != nil {
		return 0, err
	}
	return utils.Subject(claims)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.bearerUserID(r)
	if err != nil {
		http.Error(w, err.Error(), tokenErrorStatus(err))
		return
	}

	data, err := h.Service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ProfileResponse{Data: data})
}

func (h *ProfileHandler) ChangeInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := h.bearerUserID(r)
	if err != nil {
		http.Error(w, err.Error(), tokenErrorStatus(err))
		return
	}

	var req models.ChangeInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	data, err := h.Service.ChangeInfo(r.Context(), userID, req.Name, req.Gender)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ProfileResponse{Data: data})
}

// ConnectEmail привязывает почту к oauth-only аккаунту. Токен приходит в теле,
// а не в заголовке: запрос шлёт страница привязки.
func (h *ProfileHandler) ConnectEmail(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.ConnectEmail(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if status := tokenErrorStatus(err); status != http.StatusInternalServerError {
			http.Error(w, err.Error(), status)
			return
		}
		if status, ok := upstreamStatus(err); ok {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ProfileHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	userID, err := h.bearerUserID(r)
	if err != nil {
		http.Error(w, err.Error(), tokenErrorStatus(err))
		return
	}

	resp, err := h.Service.ChangeEmail(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if status, ok := upstreamStatus(err); ok {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
