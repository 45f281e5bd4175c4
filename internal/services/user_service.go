package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

type UserService struct {
	Users    *repositories.UserRepository
	Profiles *repositories.OAuthRepository
	Tokens   *utils.Manager
	Email    *EmailService
}

func (s *UserService) profileData(ctx context.Context, user models.User) models.ProfileData {
	data := models.ProfileData{
		ID:       user.ID,
		Email:    user.Email,
		Photo:    user.Photo,
		Name:     user.Name,
		Gender:   user.Gender,
		IsActive: user.IsActive,
		Bonuses:  user.Bonuses,
	}

	profile, err := s.Profiles.GetByUserAndProvider(ctx, user.ID, models.ProviderTelegram)
	if err == nil {
		if tgID, convErr := strconv.ParseInt(profile.OAuthID, 10, 64); convErr == nil {
			data.TelegramID = &tgID
		}
	}

	return data
}

func (s *UserService) Profile(ctx context.Context, userID int) (models.ProfileData, error) {
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return models.ProfileData{}, err
	}
	return s.profileData(ctx, user), nil
}

func (s *UserService) ChangeInfo(ctx context.Context, userID int, name, gender string) (models.ProfileData, error) {
	if err := s.Users.UpdateInfo(ctx, userID, name, gender); err != nil {
		return models.ProfileData{}, err
	}
	return s.Profile(ctx, userID)
}

// ConnectEmail привязывает почту к oauth-only аккаунту. Если почта уже занята
// другим аккаунтом и пароль совпал, oauth-профиль перевешивается на него.
func (s *UserService) ConnectEmail(ctx context.Context, req models.ConnectEmailRequest) (models.ConnectEmailResponse, error) {
	if req.Token == "" {
		return models.ConnectEmailResponse{
			Message: "Вы не авторизованы, пожалуйста, обновите страницу",
			Success: false,
		}, nil
	}

	claims, err := s.Tokens.Parse(req.Token)
	if err != nil {
		return models.ConnectEmailResponse{}, err
	}
	userID, err := utils.Subject(claims)
	if err != nil {
		return models.ConnectEmailResponse{}, err
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return models.ConnectEmailResponse{}, err
	}

	profile, err := s.Profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrOAuthProfileNotFound) {
			return models.ConnectEmailResponse{
				Message: "Вы выполнили вход без использования дополнительных способов входа; сейчас привязка невозможна",
				Success: false,
			}, nil
		}
		return models.ConnectEmailResponse{}, err
	}

	if user.Email != nil || user.HashedPassword != nil {
		return models.ConnectEmailResponse{
			Message: "К текущему аккаунту уже привязана почта",
			Success: false,
		}, nil
	}

	existing, err := s.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.ConnectEmailResponse{}, err
	}

	if existing.ID == 0 {
		// Почта свободна: просим подтвердить её по письму
		resetToken, err := s.Tokens.NewToken(user.ID, models.TokenTypePasswordReset, passwordResetTTL)
		if err != nil {
			return models.ConnectEmailResponse{}, err
		}
		if _, err := s.Email.Send(ctx, EmailTemplateEmailReset, req.Email, "Смена почты",
			map[string]interface{}{"reset_token": resetToken}); err != nil {
			return models.ConnectEmailResponse{}, err
		}
		return models.ConnectEmailResponse{
			Message: "Подтвердите смену почты в письме",
			Success: true,
		}, nil
	}

	if existing.HashedPassword == nil ||
		bcrypt.CompareHashAndPassword([]byte(*existing.HashedPassword), []byte(req.Password)) != nil {
		return models.ConnectEmailResponse{
			Message: "Неправильный пароль, попробуйте снова",
			Success: false,
		}, nil
	}

	if err := s.Profiles.Repoint(ctx, profile.ID, existing.ID); err != nil {
		return models.ConnectEmailResponse{}, err
	}

	return models.ConnectEmailResponse{
		Message: fmt.Sprintf("Профиль %s привязан к %s", profile.Provider, *existing.Email),
		Success: true,
	}, nil
}

// ChangeEmail выпускает email_reset токен и шлёт его на текущую почту.
func (s *UserService) ChangeEmail(ctx context.Context, userID int) (models.ChangeEmailResponse, error) {
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return models.ChangeEmailResponse{}, err
	}

	resetToken, err := s.Tokens.NewToken(user.ID, models.TokenTypeEmailReset, emailResetTTL)
	if err != nil {
		return models.ChangeEmailResponse{}, err
	}

	if user.Email != nil {
		if _, err := s.Email.Send(ctx, EmailTemplateEmailReset, *user.Email, "Смена почты",
			map[string]interface{}{"reset_token": resetToken}); err != nil {
			return models.ChangeEmailResponse{}, err
		}
	}

	return models.ChangeEmailResponse{ResetToken: resetToken, Message: "Успешно"}, nil
}

// PublicUser отдаёт пользователя по id для публичных страниц.
func (s *UserService) PublicUser(ctx context.Context, id int) (models.User, error) {
	user, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.HashedPassword = nil
	return user, nil
}
