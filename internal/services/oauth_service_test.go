package services

import (
	"testing"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

func telegramTestCallback() models.TelegramCallback {
	return models.TelegramCallback{
		ID:        42,
		FirstName: "Ivan",
		Username:  "ivan_dev",
		AuthDate:  1700000000,
		Hash:      "b53ad8a69b0174546e5c6360de255a8fb5e3e779487dca3295660ffcded656b6",
	}
}

func TestVerifyTelegramAuth(t *testing.T) {
	s := &OAuthService{BotToken: "123456:ABC-DEF"}

	if !s.verifyTelegramAuth(telegramTestCallback()) {
		t.Error("valid telegram payload rejected")
	}
}

func TestVerifyTelegramAuthMutatedField(t *testing.T) {
	s := &OAuthService{BotToken: "123456:ABC-DEF"}

	data := telegramTestCallback()
	data.Username = "mallory"
	if s.verifyTelegramAuth(data) {
		t.Error("payload with mutated username accepted")
	}

	data = telegramTestCallback()
	data.ID = 43
	if s.verifyTelegramAuth(data) {
		t.Error("payload with mutated id accepted")
	}
}

func TestVerifyTelegramAuthWrongBotToken(t *testing.T) {
	s := &OAuthService{BotToken: "999999:OTHER"}
	if s.verifyTelegramAuth(telegramTestCallback()) {
		t.Error("payload signed for another bot accepted")
	}
}

func TestVerifyTelegramAuthMissingFields(t *testing.T) {
	s := &OAuthService{BotToken: "123456:ABC-DEF"}

	data := telegramTestCallback()
	data.Hash = ""
	if s.verifyTelegramAuth(data) {
		t.Error("payload without hash accepted")
	}

	data = telegramTestCallback()
	data.AuthDate = 0
	if s.verifyTelegramAuth(data) {
		t.Error("payload without auth_date accepted")
	}
}
