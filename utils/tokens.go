package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type Manager struct {
	signingKey string
}

func NewManager(signingKey string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{signingKey: signingKey}, nil
}

// NewToken выпускает HS256-токен с subject = id пользователя и необязательным
// type-дискриминатором (password_reset / email_reset).
func (m *Manager) NewToken(userID int, tokenType string, ttl time.Duration) (string, error) {
	claims := models.Claims{
		Type: tokenType,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.signingKey))
}

// Parse проверяет подпись и срок действия токена и возвращает claims.
// Истёкший токен — ErrTokenExpired (401), любой другой дефект — ErrTokenMalformed (403).
func (m *Manager) Parse(accessToken string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return nil, models.ErrTokenMalformed
	}

	return claims, nil
}

// ParseBearer разбирает заголовок Authorization вида "Bearer <token>".
func (m *Manager) ParseBearer(authorization string) (*models.Claims, error) {
	if authorization == "" {
		return nil, models.ErrMissingAuth
	}

	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, models.ErrMalformedAuth
	}

	return m.Parse(parts[1])
}

// Subject возвращает числовой id пользователя из claims.
func Subject(claims *models.Claims) (int, error) {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, models.ErrTokenMalformed
	}
	return id, nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomPassword генерирует пароль для неявно созданного гостевого аккаунта.
// Это сохраняемый учётный секрет, поэтому байты берутся из crypto/rand.
func RandomPassword(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = passwordCharset[int(b[i])%len(passwordCharset)]
	}
	return string(b)
}
