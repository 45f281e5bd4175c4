package handlers

import (
	"errors"
	"net/http"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
)

// tokenErrorStatus переводит ошибки разбора токена в коды ответа: просроченный
// или отсутствующий токен это 401, битый 403.
func tokenErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingAuth),
		errors.Is(err, models.ErrMalformedAuth),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrTokenUsed):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrTokenMalformed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// upstreamStatus возвращает 502 для ошибок внешних сервисов.
func upstreamStatus(err error) (int, bool) {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		return http.StatusBadGateway, true
	}
	return 0, false
}
