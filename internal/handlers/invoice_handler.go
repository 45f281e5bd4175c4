package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
	Steam   *services.SteamService
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Create(r.Context(), req, r.Header.Get("Authorization"))
	if err != nil {
		if status, ok := upstreamStatus(err); ok {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *InvoiceHandler) CheckLogin(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("login")

	resp, err := h.Steam.CheckLogin(r.Context(), login)
	if err != nil {
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

func (h *InvoiceHandler) CheckSteamLink(w http.ResponseWriter, r *http.Request) {
	resp := services.CheckSteamLink(r.URL.Query().Get("link"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceUUID := r.URL.Query().Get(":uuid")

	resp, err := h.Service.Get(r.Context(), invoiceUUID, r.Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidUUID) {
			http.Error(w, "Invalid UUID format", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrInvoiceNotFound) {
			http.Error(w, "Invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	cursor, _ := strconv.Atoi(r.URL.Query().Get("cursor"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	resp, err := h.Service.List(r.Context(), r.Header.Get("Authorization"), cursor, limit, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ChangeStatus принимает подписанную смену статуса от платёжного контура.
func (h *InvoiceHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Signature")
	resp, err := h.Service.ChangeStatus(r.Context(), req, signature)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSignature) {
			http.Error(w,
				fmt.Sprintf("Invalid signature. Authorization failed: %s, %s, %s", signature, req.UUID, req.Status),
				http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *InvoiceHandler) GetPendingTransactions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Sweep(r.Context(), r.URL.Query().Get("secret_key"))
	if err != nil {
		http.Error(w, "Failed to update transactions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *InvoiceHandler) GetPaymentTransactionID(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.Service.PaymentTransaction(r.Context(), q.Get("uuid"), q.Get("secret_key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
