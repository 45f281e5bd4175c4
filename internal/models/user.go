package models

import (
	"github.com/golang-jwt/jwt"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	ID             int     `json:"id"`
	Email          *string `json:"email,omitempty"`
	HashedPassword *string `json:"-"`
	Name           string  `json:"name"`
	Gender         string  `json:"gender,omitempty"`
	Bonuses        int     `json:"bonuses"`
	Photo          *string `json:"photo,omitempty"`
	IsActive       bool    `json:"is_active"`
}

const (
	ProviderTelegram = "telegram"
	ProviderGoogle   = "google"
	ProviderVK       = "vk"
)

type OAuthProfile struct {
	ID       int     `json:"id"`
	UserID   int     `json:"user_id"`
	Provider string  `json:"provider"`
	OAuthID  string  `json:"oauth_id"`
	Photo    *string `json:"photo,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// Token type discriminators carried in the "type" claim.
const (
	TokenTypePasswordReset = "password_reset"
	TokenTypeEmailReset    = "email_reset"
)

type Claims struct {
	Type string `json:"type,omitempty"`
	jwt.StandardClaims
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

type SessionCheckResponse struct {
	Success bool `json:"success"`
}

type PasswordResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

type InitiatePasswordResetRequest struct {
	Email string `json:"email"`
}

type InitiatePasswordResetResponse struct {
	Message string `json:"message,omitempty"`
}

type TokenCheckRequest struct {
	Token string `json:"token"`
}

type TokenCheckResponse struct {
	Message string `json:"message,omitempty"`
	Valid   bool   `json:"valid"`
}

type EmailResetRequest struct {
	Token    string `json:"token"`
	NewEmail string `json:"new_email"`
}

type EmailResetResponse struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

type ProfileData struct {
	ID         int     `json:"id"`
	Email      *string `json:"email"`
	Photo      *string `json:"photo"`
	Name       string  `json:"name"`
	Gender     string  `json:"gender"`
	IsActive   bool    `json:"is_active"`
	Bonuses    int     `json:"bonuses"`
	TelegramID *int64  `json:"telegramId,omitempty"`
}

type ProfileResponse struct {
	Data ProfileData `json:"data"`
}

type ChangeInfoRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type ConnectEmailRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ConnectEmailResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type ChangeEmailResponse struct {
	ResetToken string `json:"reset_token"`
	Message    string `json:"message"`
}
