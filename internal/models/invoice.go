package models

import (
	"encoding/json"
	"time"
)

// Invoice statuses. The invoice is created in wait and advanced only through
// the signed status-change operation or the paid→process sweep.
const (
	StatusWait       = "wait"
	StatusProcess    = "process"
	StatusPaid       = "paid"
	StatusOrderOK    = "order_ok"
	StatusOrderError = "order_error"
	StatusCanceled   = "canceled"
	StatusRefunded   = "refunded"
	StatusError      = "error"
)

type Invoice struct {
	UUID          string          `json:"uuid"`
	ID            int             `json:"id"`
	ProductID     int             `json:"product_id"`
	UserID        int             `json:"user_id"`
	PaymentMethod string          `json:"payment_method"`
	DeliveryEmail *string         `json:"delivery_email,omitempty"`
	OrderInfo     json.RawMessage `json:"order_info,omitempty"`
	OrderConfirm  bool            `json:"order_confirm"`
	Bonus         int             `json:"bonus"`
	CreatedAt     time.Time       `json:"created_at"`
	Status        string          `json:"status"`

	Product *Product `json:"product,omitempty"`
	User    *User    `json:"user,omitempty"`
}

// PaymentInvoice mirrors a payment completed through the profitable adapter.
// Written by the partner system; read-only evidence, never the source of truth
// for Invoice.Status.
type PaymentInvoice struct {
	ID               int       `json:"id"`
	PaymentDatetime  time.Time `json:"payment_datetime"`
	WalletUserLogin  *string   `json:"wallet_user_login,omitempty"`
	InvoiceUUID      string    `json:"gamemoneta_invoice_uuid"`
	ServicePaymentID *string   `json:"service_payment_id,omitempty"`
	CodeURL          *string   `json:"code_url,omitempty"`
	Status           *string   `json:"status,omitempty"`
	Amount           *float64  `json:"amount,omitempty"`
}

type InvoiceCreateRequest struct {
	ProductID     int             `json:"product_id"`
	PaymentMethod string          `json:"payment_method"`
	PaymentSystem string          `json:"payment_system"`
	Amount        float64         `json:"amount"`
	DeliveryEmail string          `json:"delivery_email"`
	OrderInfo     json.RawMessage `json:"order_info,omitempty"`
	Bonus         int             `json:"bonus"`
}

type InvoiceCreateResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type InvoiceResponse struct {
	Data           Invoice         `json:"data"`
	PaymentInvoice *PaymentInvoice `json:"payment_invoice,omitempty"`
	Success        bool            `json:"success"`
}

type InvoiceListResponse struct {
	Data    []Invoice `json:"data"`
	Success bool      `json:"success"`
}

type ChangeStatusRequest struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

type ChangeStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

type PendingInvoicesResponse struct {
	Invoices []Invoice `json:"invoices,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type PaymentTransactionResponse struct {
	Invoice        *Invoice        `json:"invoice,omitempty"`
	PaymentInvoice *PaymentInvoice `json:"payment_invoice,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type SteamCheckResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
