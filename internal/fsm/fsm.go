package fsm

import (
	"context"
	"database/sql"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

// Transition table for invoice statuses. Terminal statuses (order_ok,
// order_error, canceled, refunded) have no outgoing transitions. Targets are
// provider-reported, so non-terminal states stay permissive.
var transitions = map[string]map[string]struct{}{
	models.StatusWait: {
		models.StatusProcess:  {},
		models.StatusPaid:     {},
		models.StatusCanceled: {},
		models.StatusRefunded: {},
		models.StatusError:    {},
	},
	models.StatusProcess: {
		models.StatusPaid:       {},
		models.StatusOrderOK:    {},
		models.StatusOrderError: {},
		models.StatusCanceled:   {},
		models.StatusRefunded:   {},
		models.StatusError:      {},
	},
	models.StatusPaid: {
		models.StatusProcess:    {},
		models.StatusOrderOK:    {},
		models.StatusOrderError: {},
		models.StatusCanceled:   {},
		models.StatusRefunded:   {},
		models.StatusError:      {},
	},
	models.StatusError: {
		models.StatusWait:     {},
		models.StatusProcess:  {},
		models.StatusPaid:     {},
		models.StatusCanceled: {},
		models.StatusRefunded: {},
	},
	models.StatusOrderOK:    {},
	models.StatusOrderError: {},
	models.StatusCanceled:   {},
	models.StatusRefunded:   {},
}

// IsValid reports whether s is a known invoice status.
func IsValid(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition returns whether the invoice can move from the current status
// to the target status. Same-status is allowed; callers treat it as a no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Apply updates an invoice status using an optimistic status-equality
// predicate so a concurrent change or sweep cannot be overwritten blindly.
func Apply(ctx context.Context, tx *sql.Tx, uuid, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx, `UPDATE invoices SET status = ? WHERE uuid = ? AND status = ?`, toStatus, uuid, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
