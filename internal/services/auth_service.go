package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

const (
	SessionTTL       = 24 * time.Hour
	passwordResetTTL = 30 * time.Minute
	emailResetTTL    = 60 * time.Minute
)

// userStore — срез методов *repositories.UserRepository, которыми пользуется
// сервис авторизации.
type userStore interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ResetPassword(ctx context.Context, userID int, hashedPassword, spentToken string) error
	ResetEmail(ctx context.Context, userID int, email, spentToken string) error
}

// blacklistStore проверяет, погашен ли одноразовый токен.
type blacklistStore interface {
	Exists(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	Users     userStore
	Blacklist blacklistStore
	Tokens    *utils.Manager
	Email     *EmailService
}

// SignUp регистрирует пользователя и сразу выдаёт сессионный токен.
func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, string, error) {
	existing, err := s.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, "", err
	}
	if existing.ID != 0 {
		return models.User{}, "", models.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	hashedStr := string(hashed)
	user, err := s.Users.CreateUser(ctx, models.User{
		Email:          &req.Email,
		HashedPassword: &hashedStr,
		Name:           req.Name,
	})
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.Tokens.NewToken(user.ID, "", SessionTTL)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (string, error) {
	user, err := s.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user.ID == 0 || user.HashedPassword == nil {
		return "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(req.Password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.Tokens.NewToken(user.ID, "", SessionTTL)
}

func (s *AuthService) CheckSession(authorization string) bool {
	_, err := s.Tokens.ParseBearer(authorization)
	return err == nil
}

// InitiatePasswordReset отправляет письмо со ссылкой сброса. Для неизвестной
// почты отвечает так же, как для известной.
func (s *AuthService) InitiatePasswordReset(ctx context.Context, email string) (models.InitiatePasswordResetResponse, error) {
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return models.InitiatePasswordResetResponse{}, err
	}
	if user.ID == 0 {
		return models.InitiatePasswordResetResponse{}, nil
	}

	token, err := s.Tokens.NewToken(user.ID, models.TokenTypePasswordReset, passwordResetTTL)
	if err != nil {
		return models.InitiatePasswordResetResponse{}, err
	}

	sent, err := s.Email.Send(ctx, EmailTemplatePasswordReset, email, "Смена пароля",
		map[string]interface{}{"reset_token": token})
	if err != nil || !sent {
		return models.InitiatePasswordResetResponse{Message: "Возникла ошибка. Попробуйте позже."}, nil
	}

	return models.InitiatePasswordResetResponse{}, nil
}

// verifySingleUse разбирает одноразовый токен и проверяет, что он ещё не был
// погашен и несёт нужный type-дискриминатор.
func (s *AuthService) verifySingleUse(ctx context.Context, token, wantType string) (*models.Claims, error) {
	used, err := s.Blacklist.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, models.ErrTokenUsed
	}

	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != wantType {
		return nil, models.ErrTokenMalformed
	}

	return claims, nil
}

// ResetPassword меняет пароль по одноразовому токену. Токен гасится в той же
// транзакции, что и смена пароля.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.verifySingleUse(ctx, token, models.TokenTypePasswordReset)
	if err != nil {
		return err
	}

	userID, err := utils.Subject(claims)
	if err != nil {
		return err
	}
	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.Users.ResetPassword(ctx, userID, string(hashed), token)
}

// CheckResetToken отвечает фронту, можно ли ещё показывать форму сброса.
func (s *AuthService) CheckResetToken(ctx context.Context, token string) models.TokenCheckResponse {
	used, err := s.Blacklist.Exists(ctx, token)
	if err != nil {
		return models.TokenCheckResponse{Message: "Недействительная ссылка", Valid: false}
	}
	if used {
		return models.TokenCheckResponse{Message: "Эта ссылка уже использована", Valid: false}
	}

	claims, err := s.Tokens.Parse(token)
	if err != nil {
		if errors.Is(err, models.ErrTokenExpired) {
			return models.TokenCheckResponse{Message: "Срок действия ссылки истек", Valid: false}
		}
		return models.TokenCheckResponse{Message: "Недействительная ссылка", Valid: false}
	}

	if claims.Type != models.TokenTypePasswordReset && claims.Type != models.TokenTypeEmailReset {
		return models.TokenCheckResponse{Message: "Invalid token type", Valid: false}
	}

	return models.TokenCheckResponse{Valid: true}
}

// ResetEmail меняет почту по email_reset токену. Как и при смене пароля,
// токен гасится в той же транзакции.
func (s *AuthService) ResetEmail(ctx context.Context, token, newEmail string) (models.EmailResetResponse, error) {
	claims, err := s.verifySingleUse(ctx, token, models.TokenTypeEmailReset)
	if err != nil {
		if errors.Is(err, models.ErrTokenMalformed) {
			return models.EmailResetResponse{Message: "Недействительный токен", Success: false}, nil
		}
		return models.EmailResetResponse{}, err
	}

	userID, err := utils.Subject(claims)
	if err != nil {
		return models.EmailResetResponse{Message: "Недействительный токен", Success: false}, nil
	}

	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.EmailResetResponse{Message: "Пользователь не найден", Success: false}, nil
		}
		return models.EmailResetResponse{}, err
	}

	taken, err := s.Users.GetUserByEmail(ctx, newEmail)
	if err != nil {
		return models.EmailResetResponse{}, err
	}
	if taken.ID != 0 {
		return models.EmailResetResponse{Message: "Этот email уже используется", Success: false}, nil
	}

	if err := s.Users.ResetEmail(ctx, userID, newEmail, token); err != nil {
		return models.EmailResetResponse{}, err
	}

	return models.EmailResetResponse{Message: "Email успешно изменен", Success: true}, nil
}
