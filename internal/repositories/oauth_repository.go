package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type OAuthRepository struct {
	DB *sql.DB
}

func (r *OAuthRepository) GetByOAuthID(ctx context.Context, provider, oauthID string) (models.OAuthProfile, error) {
	var profile models.OAuthProfile

	query := `
		SELECT id, user_id, provider, oauth_id, photo, name
		FROM oauth_profiles
		WHERE provider = ? AND oauth_id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, provider, oauthID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Provider,
		&profile.OAuthID,
		&profile.Photo,
		&profile.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OAuthProfile{}, models.ErrOAuthProfileNotFound
		}
		return models.OAuthProfile{}, err
	}

	return profile, nil
}

func (r *OAuthRepository) GetByUserID(ctx context.Context, userID int) (models.OAuthProfile, error) {
	var profile models.OAuthProfile

	query := `
		SELECT id, user_id, provider, oauth_id, photo, name
		FROM oauth_profiles
		WHERE user_id = ?
		LIMIT 1
	`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Provider,
		&profile.OAuthID,
		&profile.Photo,
		&profile.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OAuthProfile{}, models.ErrOAuthProfileNotFound
		}
		return models.OAuthProfile{}, err
	}

	return profile, nil
}

func (r *OAuthRepository) GetByUserAndProvider(ctx context.Context, userID int, provider string) (models.OAuthProfile, error) {
	var profile models.OAuthProfile

	query := `
		SELECT id, user_id, provider, oauth_id, photo, name
		FROM oauth_profiles
		WHERE user_id = ? AND provider = ?
		LIMIT 1
	`
	err := r.DB.QueryRowContext(ctx, query, userID, provider).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Provider,
		&profile.OAuthID,
		&profile.Photo,
		&profile.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OAuthProfile{}, models.ErrOAuthProfileNotFound
		}
		return models.OAuthProfile{}, err
	}

	return profile, nil
}

// CreateWithUser атомарно создаёт нового пользователя и его oauth-профиль при
// первом входе через стороннего провайдера.
func (r *OAuthRepository) CreateWithUser(ctx context.Context, name string, photo *string, provider, oauthID string) (models.User, models.OAuthProfile, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, models.OAuthProfile{}, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, gender, bonuses, is_active) VALUES (?, ?, 0, 1)`,
		name, models.GenderMale)
	if err != nil {
		tx.Rollback()
		return models.User{}, models.OAuthProfile{}, err
	}
	userID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return models.User{}, models.OAuthProfile{}, err
	}

	result, err = tx.ExecContext(ctx,
		`INSERT INTO oauth_profiles (user_id, provider, oauth_id, photo, name) VALUES (?, ?, ?, ?, ?)`,
		userID, provider, oauthID, photo, name)
	if err != nil {
		tx.Rollback()
		return models.User{}, models.OAuthProfile{}, err
	}
	profileID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return models.User{}, models.OAuthProfile{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, models.OAuthProfile{}, err
	}

	user := models.User{ID: int(userID), Name: name, Gender: models.GenderMale, IsActive: true}
	profile := models.OAuthProfile{
		ID:       int(profileID),
		UserID:   int(userID),
		Provider: provider,
		OAuthID:  oauthID,
		Photo:    photo,
		Name:     &name,
	}
	return user, profile, nil
}

func (r *OAuthRepository) Create(ctx context.Context, profile models.OAuthProfile) (models.OAuthProfile, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO oauth_profiles (user_id, provider, oauth_id, photo, name) VALUES (?, ?, ?, ?, ?)`,
		profile.UserID, profile.Provider, profile.OAuthID, profile.Photo, profile.Name)
	if err != nil {
		return models.OAuthProfile{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.OAuthProfile{}, err
	}
	profile.ID = int(id)
	return profile, nil
}

// Repoint перевешивает oauth-профиль на другого пользователя (account linking).
func (r *OAuthRepository) Repoint(ctx context.Context, profileID, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE oauth_profiles SET user_id = ? WHERE id = ?`, userID, profileID)
	return err
}
