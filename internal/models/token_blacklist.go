package models

// TokenBlacklist помечает одноразовый токен как использованный. Строки никогда
// не обновляются и не удаляются: ограниченный рост обеспечивает exp самого токена.
type TokenBlacklist struct {
	Token  string `json:"token"`
	UserID *int   `json:"user_id,omitempty"`
}
