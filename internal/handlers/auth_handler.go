package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, token, err := h.Service.SignUp(r.Context(), req)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.TokenResponse{Error: "Пользователь с такой почтой уже зарегистрирован"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.Service.SignIn(r.Context(), req)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			json.NewEncoder(w).Encode(models.TokenResponse{Error: "Неверные почта или пароль"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(models.TokenResponse{Token: token})
}

func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	ok := h.Service.CheckSession(r.Header.Get("Authorization"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SessionCheckResponse{Success: ok})
}

func (h *AuthHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req models.InitiatePasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.InitiatePasswordReset(r.Context(), req.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := h.Service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		resp := models.PasswordResetResponse{Success: false}
		switch {
		case errors.Is(err, models.ErrTokenUsed):
			resp.Message = "Token already used"
		case errors.Is(err, models.ErrTokenExpired):
			resp.Message = "Token has expired"
		case errors.Is(err, models.ErrTokenMalformed):
			resp.Message = "Invalid token"
		case errors.Is(err, models.ErrUserNotFound):
			resp.Message = "User not found"
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(resp)
		return
	}

	json.NewEncoder(w).Encode(models.PasswordResetResponse{Message: "Пароль успешно обновлен", Success: true})
}

func (h *AuthHandler) CheckResetToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.Service.CheckResetToken(r.Context(), req.Token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) EmailReset(w http.ResponseWriter, r *http.Request) {
	var req models.EmailResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.ResetEmail(r.Context(), req.Token, req.NewEmail)
	if err != nil {
		if errors.Is(err, models.ErrTokenUsed) || errors.Is(err, models.ErrTokenExpired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
