package repositories

import (
	"context"
	"database/sql"
	"errors"
)

type TokenBlacklistRepository struct {
	DB *sql.DB
}

// Exists проверяет, был ли одноразовый токен уже погашен.
func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	var found string
	err := r.DB.QueryRowContext(ctx,
		`SELECT token FROM token_blacklist WHERE token = ?`, token).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
