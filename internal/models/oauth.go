package models

// TelegramCallback is the login-widget payload the frontend posts back after
// the telegram oauth redirect. Empty string / zero fields are treated as
// absent when the signature check string is assembled.
type TelegramCallback struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}

// TelegramConnectCallback additionally carries the bearer token of the
// account the telegram profile should be linked to.
type TelegramConnectCallback struct {
	TelegramCallback
	Token string `json:"token"`
}

type OAuthTokenResponse struct {
	Token string `json:"token"`
}

type OAuthConnectResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
