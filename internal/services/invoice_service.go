package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/fsm"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/logger"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

const guestPasswordLength = 12

// invoiceStore — срез методов *repositories.InvoiceRepository, которыми
// пользуется сервис счетов.
type invoiceStore interface {
	CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	GetByUUID(ctx context.Context, uuid string) (models.Invoice, error)
	ListByUser(ctx context.Context, userID int, status *string, cursor, limit int) ([]models.Invoice, error)
	ListPaid(ctx context.Context) ([]models.Invoice, error)
	Transition(ctx context.Context, uuid, from, to string) error
	SweepPaid(ctx context.Context) (int64, error)
	GetPaymentInvoice(ctx context.Context, uuid string) (models.PaymentInvoice, error)
}

type InvoiceService struct {
	Invoices     invoiceStore
	Auth         *AuthService
	Tokens       *utils.Manager
	Email        *EmailService
	Lava         *LavaService
	Profitable   *ProfitableService
	StatusSecret string
}

// SignStatusChange считает подпись запроса смены статуса: HMAC-SHA256 от
// строки "uuid:status" в hex.
func SignStatusChange(secret, invoiceUUID, status string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s", invoiceUUID, status)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *InvoiceService) verifyStatusSignature(invoiceUUID, status, signature string) bool {
	expected := SignStatusChange(s.StatusSecret, invoiceUUID, status)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// IsValidInvoiceUUID проверяет форму uuid без разбора содержимого.
func IsValidInvoiceUUID(u string) bool {
	return len(u) == 36 && strings.Count(u, "-") == 4
}

// bonusFromOrderInfo достаёт bonus из order_info, иначе берёт значение из
// запроса.
func bonusFromOrderInfo(orderInfo json.RawMessage, fallback int) int {
	if len(orderInfo) == 0 {
		return fallback
	}
	var fields struct {
		Bonus *int `json:"bonus"`
	}
	if err := json.Unmarshal(orderInfo, &fields); err != nil || fields.Bonus == nil {
		return fallback
	}
	return *fields.Bonus
}

// Create заводит счёт в статусе wait и отдаёт URL платёжной страницы.
// Без валидного токена покупатель находится или регистрируется по почте
// доставки; письмо активации уходит в фоне.
func (s *InvoiceService) Create(ctx context.Context, req models.InvoiceCreateRequest, authorization string) (models.InvoiceCreateResponse, error) {
	var userID int

	claims, err := s.Tokens.ParseBearer(authorization)
	if err == nil {
		userID, err = utils.Subject(claims)
		if err != nil {
			return models.InvoiceCreateResponse{}, err
		}
	} else {
		userID, err = s.resolveGuest(ctx, req.DeliveryEmail)
		if err != nil {
			return models.InvoiceCreateResponse{}, err
		}
	}

	invoice := models.Invoice{
		UUID:          uuid.NewString(),
		ProductID:     req.ProductID,
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		DeliveryEmail: &req.DeliveryEmail,
		OrderInfo:     req.OrderInfo,
		Bonus:         bonusFromOrderInfo(req.OrderInfo, req.Bonus),
		Status:        models.StatusWait,
	}
	invoice, err = s.Invoices.CreateInvoice(ctx, invoice)
	if err != nil {
		return models.InvoiceCreateResponse{}, err
	}

	var redirectURL string
	switch req.PaymentSystem {
	case "lava":
		redirectURL, err = s.Lava.CreatePayment(ctx, req.Amount, invoice.UUID)
	case "profitable":
		redirectURL, err = s.Profitable.InitPayment(ctx, invoice.UUID, req.DeliveryEmail, req.Amount)
	default:
		return models.InvoiceCreateResponse{}, fmt.Errorf("unknown payment system %q", req.PaymentSystem)
	}
	if err != nil {
		return models.InvoiceCreateResponse{}, err
	}

	return models.InvoiceCreateResponse{RedirectURL: redirectURL}, nil
}

// resolveGuest находит пользователя по почте доставки или регистрирует его со
// случайным паролем и письмом активации.
func (s *InvoiceService) resolveGuest(ctx context.Context, deliveryEmail string) (int, error) {
	existing, err := s.Auth.Users.GetUserByEmail(ctx, deliveryEmail)
	if err != nil {
		return 0, err
	}
	if existing.ID != 0 {
		return existing.ID, nil
	}

	user, token, err := s.Auth.SignUp(ctx, models.SignUpRequest{
		Email:    deliveryEmail,
		Name:     "Пользователь",
		Password: utils.RandomPassword(guestPasswordLength),
	})
	if err != nil {
		return 0, err
	}

	go func() {
		if _, err := s.Email.Send(context.Background(), EmailTemplateActivateProfile,
			deliveryEmail, "Активация профиля",
			map[string]interface{}{"reset_token": token}); err != nil {
			logger.Error("письмо активации не отправлено", zap.Error(err))
		}
	}()

	return user.ID, nil
}

// ChangeStatus применяет подписанную смену статуса. Подпись проверяется до
// любых остальных проверок.
func (s *InvoiceService) ChangeStatus(ctx context.Context, req models.ChangeStatusRequest, signature string) (models.ChangeStatusResponse, error) {
	if !s.verifyStatusSignature(req.UUID, req.Status, signature) {
		return models.ChangeStatusResponse{}, models.ErrInvalidSignature
	}

	if !IsValidInvoiceUUID(req.UUID) {
		return models.ChangeStatusResponse{Success: false, Status: req.Status, Detail: "Invalid UUID format."}, nil
	}

	invoice, err := s.Invoices.GetByUUID(ctx, req.UUID)
	if err != nil {
		if errors.Is(err, models.ErrInvoiceNotFound) {
			return models.ChangeStatusResponse{Success: false, Status: req.Status, Detail: "Invoice not found."}, nil
		}
		return models.ChangeStatusResponse{}, err
	}

	if invoice.Status == req.Status {
		return models.ChangeStatusResponse{
			Success: true,
			Status:  req.Status,
			Detail:  fmt.Sprintf("Status is already %s.", req.Status),
		}, nil
	}

	if !fsm.CanTransition(invoice.Status, req.Status) {
		return models.ChangeStatusResponse{
			Success: false,
			Status:  req.Status,
			Detail:  fmt.Sprintf("Transition %s -> %s is not allowed.", invoice.Status, req.Status),
		}, nil
	}

	if err := s.Invoices.Transition(ctx, req.UUID, invoice.Status, req.Status); err != nil {
		return models.ChangeStatusResponse{}, err
	}

	if req.Status == models.StatusPaid && invoice.DeliveryEmail != nil {
		// Письмо не должно блокировать подтверждение оплаты
		email := *invoice.DeliveryEmail
		go func() {
			if _, err := s.Email.Send(context.Background(), EmailTemplateTransaction,
				email, "Успешная покупка",
				map[string]interface{}{"order_uuid": req.UUID}); err != nil {
				logger.Error("письмо о покупке не отправлено", zap.Error(err))
			}
		}()
	}

	return models.ChangeStatusResponse{Success: true, Status: req.Status}, nil
}

// Get отдаёт счёт по uuid. Личные поля покупателя видит только владелец с
// валидным токеном.
func (s *InvoiceService) Get(ctx context.Context, invoiceUUID, authorization string) (models.InvoiceResponse, error) {
	if !IsValidInvoiceUUID(invoiceUUID) {
		return models.InvoiceResponse{}, models.ErrInvalidUUID
	}

	invoice, err := s.Invoices.GetByUUID(ctx, invoiceUUID)
	if err != nil {
		return models.InvoiceResponse{}, err
	}

	var paymentInvoice *models.PaymentInvoice
	if pi, err := s.Invoices.GetPaymentInvoice(ctx, invoiceUUID); err == nil {
		paymentInvoice = &pi
	} else if !errors.Is(err, models.ErrPaymentInvoiceNotFound) {
		return models.InvoiceResponse{}, err
	}

	owned := false
	if claims, err := s.Tokens.ParseBearer(authorization); err == nil {
		if id, err := utils.Subject(claims); err == nil && id == invoice.UserID {
			owned = true
		}
	}
	if !owned {
		invoice.User = nil
		invoice.DeliveryEmail = nil
	}

	return models.InvoiceResponse{Data: invoice, PaymentInvoice: paymentInvoice, Success: true}, nil
}

// List отдаёт счета владельца токена страницами от новых к старым. Невалидный
// или отсутствующий токен это пустой список с success=false, не ошибка.
func (s *InvoiceService) List(ctx context.Context, authorization string, cursor, limit int, status *string) (models.InvoiceListResponse, error) {
	claims, err := s.Tokens.ParseBearer(authorization)
	if err != nil {
		return models.InvoiceListResponse{Data: []models.Invoice{}, Success: false}, nil
	}
	userID, err := utils.Subject(claims)
	if err != nil {
		return models.InvoiceListResponse{Data: []models.Invoice{}, Success: false}, nil
	}

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	invoices, err := s.Invoices.ListByUser(ctx, userID, status, cursor, limit)
	if err != nil {
		return models.InvoiceListResponse{}, err
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}

	return models.InvoiceListResponse{Data: invoices, Success: true}, nil
}

// Sweep выгружает оплаченные счета доверенному обработчику и одним UPDATE
// переводит их в process.
func (s *InvoiceService) Sweep(ctx context.Context, secretKey string) (models.PendingInvoicesResponse, error) {
	if secretKey != s.StatusSecret {
		return models.PendingInvoicesResponse{Error: fmt.Sprintf("Invalid key %s", secretKey)}, nil
	}

	invoices, err := s.Invoices.ListPaid(ctx)
	if err != nil {
		return models.PendingInvoicesResponse{}, err
	}
	if len(invoices) == 0 {
		return models.PendingInvoicesResponse{Error: `No transactions found with status "paid".`}, nil
	}

	if _, err := s.Invoices.SweepPaid(ctx); err != nil {
		return models.PendingInvoicesResponse{}, err
	}

	return models.PendingInvoicesResponse{Invoices: invoices}, nil
}

// PaymentTransaction отдаёт счёт вместе с зеркальной записью платёжной
// системы. Доступ только по секретному ключу.
func (s *InvoiceService) PaymentTransaction(ctx context.Context, invoiceUUID, secretKey string) (models.PaymentTransactionResponse, error) {
	if secretKey != s.StatusSecret {
		return models.PaymentTransactionResponse{Error: "Invalid secret key"}, nil
	}

	invoice, err := s.Invoices.GetByUUID(ctx, invoiceUUID)
	if err != nil {
		if errors.Is(err, models.ErrInvoiceNotFound) {
			return models.PaymentTransactionResponse{Error: "Invoice not found."}, nil
		}
		return models.PaymentTransactionResponse{}, err
	}

	paymentInvoice, err := s.Invoices.GetPaymentInvoice(ctx, invoiceUUID)
	if err != nil {
		if errors.Is(err, models.ErrPaymentInvoiceNotFound) {
			return models.PaymentTransactionResponse{Error: "Payment invoice not found."}, nil
		}
		return models.PaymentTransactionResponse{}, err
	}

	return models.PaymentTransactionResponse{Invoice: &invoice, PaymentInvoice: &paymentInvoice}, nil
}
