package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

func TestSignStatusChange(t *testing.T) {
	got := SignStatusChange("testsecret", "123e4567-e89b-12d3-a456-426614174000", "paid")
	want := "224c2e1758d0ccfca9313d36b724bd3924ad893b7a57e1ca59c6bf5fdc7643e3"
	if got != want {
		t.Errorf("SignStatusChange() = %s; want %s", got, want)
	}
}

func TestVerifyStatusSignature(t *testing.T) {
	s := &InvoiceService{StatusSecret: "testsecret"}
	uuid := "123e4567-e89b-12d3-a456-426614174000"

	if !s.verifyStatusSignature(uuid, "paid", SignStatusChange("testsecret", uuid, "paid")) {
		t.Error("valid signature rejected")
	}
	if s.verifyStatusSignature(uuid, "paid", SignStatusChange("othersecret", uuid, "paid")) {
		t.Error("signature with wrong secret accepted")
	}
	if s.verifyStatusSignature(uuid, "canceled", SignStatusChange("testsecret", uuid, "paid")) {
		t.Error("signature for another status accepted")
	}
}

func TestIsValidInvoiceUUID(t *testing.T) {
	tests := []struct {
		uuid string
		want bool
	}{
		{"123e4567-e89b-12d3-a456-426614174000", true},
		{"123e4567-e89b-12d3-a456-42661417400", false},
		{"123e4567-e89b-12d3-a456-4266141740000", false},
		{"123e4567ee89be12d3ea456e426614174000", false},
		// проверяется только форма, не содержимое
		{"abcdefgh-ijkl-mnop-qrst-uvwxyzabcdef", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidInvoiceUUID(tt.uuid); got != tt.want {
			t.Errorf("IsValidInvoiceUUID(%q) = %v; want %v", tt.uuid, got, tt.want)
		}
	}
}

// fakeInvoiceStore хранит счета в памяти и считает обращения к Transition и
// SweepPaid.
type fakeInvoiceStore struct {
	invoices    map[string]models.Invoice
	transitions []string
	sweeps      int
}

func (f *fakeInvoiceStore) CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	invoice.ID = len(f.invoices) + 1
	f.invoices[invoice.UUID] = invoice
	return invoice, nil
}

func (f *fakeInvoiceStore) GetByUUID(ctx context.Context, uuid string) (models.Invoice, error) {
	invoice, ok := f.invoices[uuid]
	if !ok {
		return models.Invoice{}, models.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (f *fakeInvoiceStore) ListByUser(ctx context.Context, userID int, status *string, cursor, limit int) ([]models.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceStore) ListPaid(ctx context.Context) ([]models.Invoice, error) {
	var paid []models.Invoice
	for _, invoice := range f.invoices {
		if invoice.Status == models.StatusPaid {
			paid = append(paid, invoice)
		}
	}
	return paid, nil
}

func (f *fakeInvoiceStore) Transition(ctx context.Context, uuid, from, to string) error {
	invoice, ok := f.invoices[uuid]
	if !ok || invoice.Status != from {
		return models.ErrInvoiceNotFound
	}
	invoice.Status = to
	f.invoices[uuid] = invoice
	f.transitions = append(f.transitions, from+"->"+to)
	return nil
}

func (f *fakeInvoiceStore) SweepPaid(ctx context.Context) (int64, error) {
	var n int64
	for uuid, invoice := range f.invoices {
		if invoice.Status == models.StatusPaid {
			invoice.Status = models.StatusProcess
			f.invoices[uuid] = invoice
			n++
		}
	}
	f.sweeps++
	return n, nil
}

func (f *fakeInvoiceStore) GetPaymentInvoice(ctx context.Context, uuid string) (models.PaymentInvoice, error) {
	return models.PaymentInvoice{}, models.ErrPaymentInvoiceNotFound
}

const testInvoiceUUID = "123e4567-e89b-12d3-a456-426614174000"

func newInvoiceFixture(status string) (*InvoiceService, *fakeInvoiceStore) {
	store := &fakeInvoiceStore{invoices: map[string]models.Invoice{
		testInvoiceUUID: {ID: 1, UUID: testInvoiceUUID, UserID: 1, Status: status},
	}}
	return &InvoiceService{Invoices: store, StatusSecret: "testsecret"}, store
}

func TestChangeStatusBadSignatureNoMutation(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusWait)

	req := models.ChangeStatusRequest{UUID: testInvoiceUUID, Status: models.StatusPaid}
	_, err := s.ChangeStatus(context.Background(), req, "bad-signature")
	if !errors.Is(err, models.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if len(store.transitions) != 0 {
		t.Errorf("unexpected transitions: %v", store.transitions)
	}
	if got := store.invoices[testInvoiceUUID].Status; got != models.StatusWait {
		t.Errorf("status changed to %s", got)
	}
}

func TestChangeStatusSameStatusIdempotent(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusPaid)

	req := models.ChangeStatusRequest{UUID: testInvoiceUUID, Status: models.StatusPaid}
	resp, err := s.ChangeStatus(context.Background(), req,
		SignStatusChange("testsecret", testInvoiceUUID, models.StatusPaid))
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("expected success for repeated status")
	}
	if resp.Detail != "Status is already paid." {
		t.Errorf("detail mismatch: %q", resp.Detail)
	}
	if len(store.transitions) != 0 {
		t.Errorf("unexpected transitions: %v", store.transitions)
	}
}

func TestChangeStatusTerminalRejected(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusOrderOK)

	req := models.ChangeStatusRequest{UUID: testInvoiceUUID, Status: models.StatusPaid}
	resp, err := s.ChangeStatus(context.Background(), req,
		SignStatusChange("testsecret", testInvoiceUUID, models.StatusPaid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("expected rejection out of order_ok")
	}
	if resp.Detail != "Transition order_ok -> paid is not allowed." {
		t.Errorf("detail mismatch: %q", resp.Detail)
	}
	if got := store.invoices[testInvoiceUUID].Status; got != models.StatusOrderOK {
		t.Errorf("status changed to %s", got)
	}
}

func TestChangeStatusAppliesTransition(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusWait)

	req := models.ChangeStatusRequest{UUID: testInvoiceUUID, Status: models.StatusPaid}
	resp, err := s.ChangeStatus(context.Background(), req,
		SignStatusChange("testsecret", testInvoiceUUID, models.StatusPaid))
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Errorf("expected success, detail %q", resp.Detail)
	}
	if got := store.invoices[testInvoiceUUID].Status; got != models.StatusPaid {
		t.Errorf("status = %s; want paid", got)
	}
	if len(store.transitions) != 1 || store.transitions[0] != "wait->paid" {
		t.Errorf("transitions = %v", store.transitions)
	}
}

func TestSweepRepeatNoOp(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusPaid)

	resp, err := s.Sweep(context.Background(), "testsecret")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Invoices) != 1 || resp.Error != "" {
		t.Fatalf("unexpected first sweep: %+v", resp)
	}
	if store.sweeps != 1 {
		t.Fatalf("sweeps = %d; want 1", store.sweeps)
	}

	// повторный вызов не должен трогать уже переведённые счета
	resp, err = s.Sweep(context.Background(), "testsecret")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != `No transactions found with status "paid".` {
		t.Errorf("error mismatch: %q", resp.Error)
	}
	if store.sweeps != 1 {
		t.Errorf("sweeps = %d; want 1", store.sweeps)
	}
}

func TestSweepBadKey(t *testing.T) {
	s, store := newInvoiceFixture(models.StatusPaid)

	resp, err := s.Sweep(context.Background(), "wrong")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Invalid key wrong" {
		t.Errorf("error mismatch: %q", resp.Error)
	}
	if store.sweeps != 0 {
		t.Errorf("sweeps = %d; want 0", store.sweeps)
	}
}

func TestBonusFromOrderInfo(t *testing.T) {
	tests := []struct {
		name      string
		orderInfo string
		fallback  int
		want      int
	}{
		{"bonus present", `{"bonus": 50, "login": "player1"}`, 10, 50},
		{"bonus zero", `{"bonus": 0}`, 10, 0},
		{"bonus absent", `{"login": "player1"}`, 10, 10},
		{"empty order info", ``, 7, 7},
		{"broken json", `{"bonus":`, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bonusFromOrderInfo(json.RawMessage(tt.orderInfo), tt.fallback)
			if got != tt.want {
				t.Errorf("bonusFromOrderInfo() = %d; want %d", got, tt.want)
			}
		})
	}
}
