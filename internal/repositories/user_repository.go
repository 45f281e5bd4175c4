package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User

	query := `
		SELECT id, email, hashed_password, name, gender, bonuses, photo, is_active
		FROM users
		WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Name,
		&user.Gender,
		&user.Bonuses,
		&user.Photo,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}

	return user, nil
}

// GetUserByEmail возвращает нулевого пользователя без ошибки, если записи нет:
// вызывающий код проверяет user.ID.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User

	query := `
		SELECT id, email, hashed_password, name, gender, bonuses, photo, is_active
		FROM users
		WHERE email = ?
	`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Name,
		&user.Gender,
		&user.Bonuses,
		&user.Photo,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil
		}
		return models.User{}, err
	}

	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (email, hashed_password, name, gender, bonuses, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if user.Gender == "" {
		user.Gender = models.GenderMale
	}
	result, err := r.DB.ExecContext(ctx, query,
		user.Email, user.HashedPassword, user.Name, user.Gender, user.Bonuses, user.IsActive)
	if err != nil {
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)

	return user, nil
}

func (r *UserRepository) UpdateInfo(ctx context.Context, id int, name, gender string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = ?, gender = ? WHERE id = ?`, name, gender, id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		// Строка могла совпасть без изменений; проверяем существование
		if _, err := r.GetUserByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ResetEmail обновляет почту и гасит одноразовый токен в одной транзакции.
func (r *UserRepository) ResetEmail(ctx context.Context, userID int, email, spentToken string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, email, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO token_blacklist (token, user_id) VALUES (?, ?)`, spentToken, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *UserRepository) UpdatePhoto(ctx context.Context, id int, photo string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET photo = ? WHERE id = ?`, photo, id)
	return err
}

// ResetPassword обновляет пароль и гасит одноразовый токен в одной транзакции:
// токен не должен остаться пригодным, если коммит не прошёл.
func (r *UserRepository) ResetPassword(ctx context.Context, userID int, hashedPassword, spentToken string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET hashed_password = ? WHERE id = ?`, hashedPassword, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO token_blacklist (token, user_id) VALUES (?, ?)`, spentToken, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
