package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type GiftHandler struct {
	Service *services.ProductService
}

func (h *GiftHandler) GetAllGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.Service.GetGifts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if gifts == nil {
		gifts = []models.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.GiftListResponse{Gifts: gifts, Success: len(gifts) > 0})
}

func (h *GiftHandler) GetGiftByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid gift ID", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.GetGift(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// BatchCreateGifts создаёт пачку подарков одной транзакцией.
func (h *GiftHandler) BatchCreateGifts(w http.ResponseWriter, r *http.Request) {
	var req models.BatchGiftCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ids, err := h.Service.BatchCreateGifts(r.Context(), req.Gifts)
	if err != nil {
		http.Error(w, "Failed to create gifts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.BatchGiftCreateResponse{Success: true, CreatedProductIDs: ids})
}
