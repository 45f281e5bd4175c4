package repositories

import (
	"context"
	"database/sql"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type LavaRepository struct {
	DB *sql.DB
}

// InsertWebhook пишет каждый колбэк отдельной строкой, без дедупликации.
func (r *LavaRepository) InsertWebhook(ctx context.Context, hook models.LavaWebhook) (models.LavaWebhook, error) {
	query := `
		INSERT INTO lava_webhooks (invoice_id, order_id, status, pay_time, amount, credited, custom_fields)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		hook.InvoiceID, hook.OrderID, hook.Status, hook.PayTime,
		hook.Amount, hook.Credited, []byte(hook.CustomFields))
	if err != nil {
		return models.LavaWebhook{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.LavaWebhook{}, err
	}
	hook.ID = int(id)

	return hook, nil
}
