package models

import (
	"encoding/json"
	"time"
)

// Lava webhook statuses as the provider reports them.
const (
	LavaStatusError   = "error"
	LavaStatusCancel  = "cancel"
	LavaStatusPending = "pending"
	LavaStatusSuccess = "success"
)

// LavaWebhook is an append-only record of an inbound lava callback. One row
// per callback, not deduplicated.
type LavaWebhook struct {
	ID           int             `json:"id"`
	InvoiceID    string          `json:"invoice_id"`
	OrderID      *string         `json:"order_id,omitempty"`
	Status       string          `json:"status"`
	PayTime      time.Time       `json:"pay_time"`
	Amount       float64         `json:"amount"`
	Credited     float64         `json:"credited"`
	CustomFields json.RawMessage `json:"custom_fields,omitempty"`
}

// LavaWebhookRequest tolerates and ignores extra provider fields.
type LavaWebhookRequest struct {
	InvoiceID    string          `json:"invoice_id"`
	OrderID      *string         `json:"order_id"`
	Status       string          `json:"status"`
	PayTime      string          `json:"pay_time"`
	Amount       float64         `json:"amount"`
	Credited     float64         `json:"credited"`
	CustomFields json.RawMessage `json:"custom_fields"`
}
