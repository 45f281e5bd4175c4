package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

type OAuthService struct {
	Users    *repositories.UserRepository
	Profiles *repositories.OAuthRepository
	Tokens   *utils.Manager
	BotToken string
	BotID    string
	Origin   string
}

// verifyTelegramAuth сверяет hash из виджета телеграма. Строка проверки
// собирается из присутствующих полей в фиксированном порядке, ключ подписи
// это SHA256 от токена бота.
func (s *OAuthService) verifyTelegramAuth(data models.TelegramCallback) bool {
	if data.Hash == "" || data.AuthDate == 0 {
		return false
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("auth_date=%d", data.AuthDate))
	if data.FirstName != "" {
		lines = append(lines, "first_name="+data.FirstName)
	}
	if data.ID != 0 {
		lines = append(lines, fmt.Sprintf("id=%d", data.ID))
	}
	if data.LastName != "" {
		lines = append(lines, "last_name="+data.LastName)
	}
	if data.PhotoURL != "" {
		lines = append(lines, "photo_url="+data.PhotoURL)
	}
	if data.Username != "" {
		lines = append(lines, "username="+data.Username)
	}
	checkString := strings.Join(lines, "\n")

	secretKey := sha256.Sum256([]byte(s.BotToken))
	mac := hmac.New(sha256.New, secretKey[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(data.Hash))
}

// LoginURL отдаёт адрес страницы авторизации телеграма для входа.
func (s *OAuthService) LoginURL() string {
	return fmt.Sprintf(
		"https://oauth.telegram.org/auth?bot_id=%s&origin=%s&request_access=write&return_to=%s",
		s.BotID, s.Origin, s.Origin)
}

// ConnectURL то же для привязки телеграма к существующему аккаунту.
func (s *OAuthService) ConnectURL() string {
	return fmt.Sprintf(
		"https://oauth.telegram.org/auth?bot_id=%s&origin=%s-connect/&request_access=write",
		s.BotID, s.Origin)
}

// Login выдаёт сессионный токен по подписанным данным телеграма. Для нового
// oauth_id пользователь и профиль создаются одной транзакцией.
func (s *OAuthService) Login(ctx context.Context, data models.TelegramCallback) (string, error) {
	if !s.verifyTelegramAuth(data) {
		return "", models.ErrInvalidSignature
	}

	oauthID := strconv.FormatInt(data.ID, 10)
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)

	profile, err := s.Profiles.GetByOAuthID(ctx, models.ProviderTelegram, oauthID)
	if err != nil {
		if !errors.Is(err, models.ErrOAuthProfileNotFound) {
			return "", err
		}
		var photo *string
		if data.PhotoURL != "" {
			photo = &data.PhotoURL
		}
		_, profile, err = s.Profiles.CreateWithUser(ctx, name, photo, models.ProviderTelegram, oauthID)
		if err != nil {
			return "", err
		}
	}

	return s.Tokens.NewToken(profile.UserID, "", SessionTTL)
}

// Connect привязывает телеграм-профиль к аккаунту, которому принадлежит
// переданный токен.
func (s *OAuthService) Connect(ctx context.Context, data models.TelegramConnectCallback) (models.OAuthConnectResponse, error) {
	if !s.verifyTelegramAuth(data.TelegramCallback) {
		return models.OAuthConnectResponse{}, models.ErrInvalidSignature
	}

	claims, err := s.Tokens.Parse(data.Token)
	if err != nil {
		return models.OAuthConnectResponse{}, err
	}
	userID, err := utils.Subject(claims)
	if err != nil {
		return models.OAuthConnectResponse{}, err
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return models.OAuthConnectResponse{}, err
	}

	if user.Email == nil {
		return models.OAuthConnectResponse{
			Message: "У вашего профиля нет привязанной почты; обратитесь в поддержку",
			Success: false,
		}, nil
	}

	oauthID := strconv.FormatInt(data.ID, 10)
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)
	var photo *string
	if data.PhotoURL != "" {
		photo = &data.PhotoURL
	}

	profile, err := s.Profiles.GetByOAuthID(ctx, models.ProviderTelegram, oauthID)
	if err != nil {
		if !errors.Is(err, models.ErrOAuthProfileNotFound) {
			return models.OAuthConnectResponse{}, err
		}
		_, err = s.Profiles.Create(ctx, models.OAuthProfile{
			UserID:   user.ID,
			Provider: models.ProviderTelegram,
			OAuthID:  oauthID,
			Photo:    photo,
			Name:     &name,
		})
		if err != nil {
			return models.OAuthConnectResponse{}, err
		}
	} else if err := s.Profiles.Repoint(ctx, profile.ID, user.ID); err != nil {
		return models.OAuthConnectResponse{}, err
	}

	if user.Photo == nil && photo != nil {
		if err := s.Users.UpdatePhoto(ctx, user.ID, *photo); err != nil {
			return models.OAuthConnectResponse{}, err
		}
	}

	return models.OAuthConnectResponse{Message: "Telegram привязан успешно", Success: true}, nil
}
