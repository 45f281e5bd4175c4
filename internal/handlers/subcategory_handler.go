package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type SubcategoryHandler struct {
	Service *services.SubcategoryService
}

func (h *SubcategoryHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}

	var sub models.Subcategory
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sub.ID = id

	updated, err := h.Service.UpdateSubcategory(r.Context(), sub)
	if err != nil {
		if errors.Is(err, models.ErrSubcategoryNotFound) {
			http.Error(w, "Subcategory not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *SubcategoryHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteSubcategory(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrSubcategoryNotFound) {
			http.Error(w, "Subcategory not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SubcategoryHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := strconv.Atoi(r.URL.Query().Get(":subcategory_id"))
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}

	products, err := h.Service.GetProducts(r.Context(), subcategoryID)
	if err != nil {
		if errors.Is(err, models.ErrSubcategoryNotFound) {
			http.Error(w, "Subcategory not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ProductListResponse{Products: products, Success: len(products) > 0})
}

func (h *SubcategoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := strconv.Atoi(r.URL.Query().Get(":subcategory_id"))
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), subcategoryID, product)
	if err != nil {
		if errors.Is(err, models.ErrSubcategoryNotFound) {
			http.Error(w, "Subcategory not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}
