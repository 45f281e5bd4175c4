package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type LavaHandler struct {
	Service *services.LavaService
}

// Webhook принимает колбэк lava и сохраняет его как есть.
func (h *LavaHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req models.LavaWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.Service.StoreWebhook(r.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Webhook received and stored",
	})
}
