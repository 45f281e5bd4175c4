package logger

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var (
	botInstance *tgbotapi.BotAPI
	chatID      int64
	once        sync.Once
)

// InitNotifier включает Telegram-уведомления об ошибках для операторов
func InitNotifier(bot *tgbotapi.BotAPI, chat int64) {
	once.Do(func() {
		botInstance = bot
		chatID = chat
	})
}

// NotifyOperator отправляет сообщение в операторский чат. Ошибки отправки
// логируются и никогда не всплывают наружу.
func NotifyOperator(msg string) {
	if botInstance == nil || chatID == 0 {
		return
	}
	if _, err := botInstance.Send(tgbotapi.NewMessage(chatID, "[ALERT] "+msg)); err != nil {
		Error("failed to send operator notification", zap.Error(err))
	}
}

// NotifyError формирует текст уведомления о необработанной ошибке запроса.
func NotifyError(err error, method, path string) {
	msg := fmt.Sprintf("Ошибка: %v\nПуть: %s\nМетод: %s", err, path, method)
	Error("unhandled error", zap.String("path", path), zap.String("method", method), zap.Error(err))
	NotifyOperator(msg)
}
