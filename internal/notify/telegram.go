package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"identity-service/internal/config"
)

// Notifier sends admin alerts about account activity to a Telegram chat.
// A nil Notifier is valid and does nothing.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// New creates the notifier, or returns nil when notifications are disabled.
func New(cfg *config.Config, logger *zap.Logger) (*Notifier, error) {
	if !cfg.Notifications.Enabled || cfg.Notifications.TelegramBotToken == "" {
		logger.Info("Registration notifications are disabled")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.Notifications.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", api.Self.UserName))

	return &Notifier{
		api:    api,
		chatID: cfg.Notifications.AdminChatID,
		logger: logger,
	}, nil
}

// UserRegistered announces a new account to the admin chat. Failures are
// logged and swallowed; a notification problem never affects the request.
func (n *Notifier) UserRegistered(username, email string) {
	if n == nil {
		return
	}

	text := fmt.Sprintf("New account registered: %s (%s)", username, email)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send registration notification", zap.Error(err))
	}
}
