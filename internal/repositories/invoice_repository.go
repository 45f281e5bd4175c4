package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/fsm"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	query := `
		INSERT INTO invoices (uuid, product_id, user_id, payment_method, delivery_email, order_info, order_confirm, bonus, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		invoice.UUID, invoice.ProductID, invoice.UserID, invoice.PaymentMethod,
		invoice.DeliveryEmail, []byte(invoice.OrderInfo), invoice.OrderConfirm,
		invoice.Bonus, invoice.Status)
	if err != nil {
		return models.Invoice{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Invoice{}, err
	}
	invoice.ID = int(id)

	return invoice, nil
}

func (r *InvoiceRepository) GetByUUID(ctx context.Context, uuid string) (models.Invoice, error) {
	var invoice models.Invoice
	var product models.Product
	var sub models.Subcategory
	var cat models.Category
	var user models.User

	query := `
		SELECT i.uuid, i.id, i.product_id, i.user_id, i.payment_method, i.delivery_email,
		       i.order_info, i.order_confirm, i.bonus, i.created_at, i.status,
		       p.id, p.subcategory_id, p.name, p.price, p.description, p.image_url, p.preview_image_url,
		       s.id, s.category_id, s.name, s.description,
		       c.id, c.name, c.description,
		       u.id, u.email, u.name, u.bonuses
		FROM invoices i
		JOIN products p ON p.id = i.product_id
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
		JOIN users u ON u.id = i.user_id
		WHERE i.uuid = ?
	`
	var orderInfo []byte
	err := r.DB.QueryRowContext(ctx, query, uuid).Scan(
		&invoice.UUID, &invoice.ID, &invoice.ProductID, &invoice.UserID,
		&invoice.PaymentMethod, &invoice.DeliveryEmail,
		&orderInfo, &invoice.OrderConfirm, &invoice.Bonus, &invoice.CreatedAt, &invoice.Status,
		&product.ID, &product.SubcategoryID, &product.Name, &product.Price,
		&product.Description, &product.ImageURL, &product.PreviewImageURL,
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description,
		&cat.ID, &cat.Name, &cat.Description,
		&user.ID, &user.Email, &user.Name, &user.Bonuses,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, models.ErrInvoiceNotFound
		}
		return models.Invoice{}, err
	}

	invoice.OrderInfo = orderInfo
	sub.Category = &cat
	product.Subcategory = &sub
	invoice.Product = &product
	invoice.User = &user

	return invoice, nil
}

// ListByUser отдаёт счета пользователя страницами от новых к старым. Курсор
// это id последнего счёта предыдущей страницы, 0 означает с начала.
func (r *InvoiceRepository) ListByUser(ctx context.Context, userID int, status *string, cursor, limit int) ([]models.Invoice, error) {
	query := `
		SELECT uuid, id, product_id, user_id, payment_method, delivery_email,
		       order_info, order_confirm, bonus, created_at, status
		FROM invoices
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if cursor > 0 {
		query += ` AND id < ?`
		args = append(args, cursor)
	}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var orderInfo []byte
		if err := rows.Scan(&inv.UUID, &inv.ID, &inv.ProductID, &inv.UserID,
			&inv.PaymentMethod, &inv.DeliveryEmail,
			&orderInfo, &inv.OrderConfirm, &inv.Bonus, &inv.CreatedAt, &inv.Status); err != nil {
			return nil, err
		}
		inv.OrderInfo = orderInfo
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// ListPaid отдаёт все оплаченные счета с товаром и покупателем для выгрузки
// внешнему обработчику заказов.
func (r *InvoiceRepository) ListPaid(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT i.uuid, i.id, i.product_id, i.user_id, i.payment_method, i.delivery_email,
		       i.order_info, i.order_confirm, i.bonus, i.created_at, i.status,
		       p.id, p.subcategory_id, p.name, p.price, p.description, p.image_url, p.preview_image_url,
		       s.id, s.category_id, s.name, s.description,
		       c.id, c.name, c.description,
		       u.id, u.email, u.name, u.bonuses
		FROM invoices i
		JOIN products p ON p.id = i.product_id
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
		JOIN users u ON u.id = i.user_id
		WHERE i.status = ?
	`
	rows, err := r.DB.QueryContext(ctx, query, models.StatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		var product models.Product
		var sub models.Subcategory
		var cat models.Category
		var user models.User
		var orderInfo []byte
		if err := rows.Scan(
			&invoice.UUID, &invoice.ID, &invoice.ProductID, &invoice.UserID,
			&invoice.PaymentMethod, &invoice.DeliveryEmail,
			&orderInfo, &invoice.OrderConfirm, &invoice.Bonus, &invoice.CreatedAt, &invoice.Status,
			&product.ID, &product.SubcategoryID, &product.Name, &product.Price,
			&product.Description, &product.ImageURL, &product.PreviewImageURL,
			&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description,
			&cat.ID, &cat.Name, &cat.Description,
			&user.ID, &user.Email, &user.Name, &user.Bonuses,
		); err != nil {
			return nil, err
		}
		invoice.OrderInfo = orderInfo
		sub.Category = &cat
		product.Subcategory = &sub
		invoice.Product = &product
		invoice.User = &user
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// Transition переводит счёт в новый статус через оптимистичный UPDATE по
// текущему статусу. Переход в paid попутно взводит order_confirm.
func (r *InvoiceRepository) Transition(ctx context.Context, uuid, from, to string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fsm.Apply(ctx, tx, uuid, from, to); err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrInvoiceNotFound
		}
		return err
	}

	if to == models.StatusPaid {
		if _, err := tx.ExecContext(ctx,
			`UPDATE invoices SET order_confirm = 1 WHERE uuid = ?`, uuid); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// SweepPaid одним запросом перегоняет все оплаченные счета в обработку.
func (r *InvoiceRepository) SweepPaid(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE status = ?`,
		models.StatusProcess, models.StatusPaid)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *InvoiceRepository) GetPaymentInvoice(ctx context.Context, uuid string) (models.PaymentInvoice, error) {
	var pi models.PaymentInvoice

	query := `
		SELECT id, payment_datetime, wallet_user_login, gamemoneta_invoice_uuid,
		       service_payment_id, code_url, status, amount
		FROM payment_invoices
		WHERE gamemoneta_invoice_uuid = ?
		ORDER BY id DESC
		LIMIT 1
	`
	err := r.DB.QueryRowContext(ctx, query, uuid).Scan(
		&pi.ID, &pi.PaymentDatetime, &pi.WalletUserLogin, &pi.InvoiceUUID,
		&pi.ServicePaymentID, &pi.CodeURL, &pi.Status, &pi.Amount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PaymentInvoice{}, models.ErrPaymentInvoiceNotFound
		}
		return models.PaymentInvoice{}, err
	}

	return pi, nil
}
