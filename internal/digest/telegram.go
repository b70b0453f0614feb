package digest

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"donorscan/internal/config"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender delivers digests to a Telegram chat.
type TelegramSender struct {
	api    telegramAPI
	chatID int64
}

// NewTelegramSender creates a sender for the given Telegram configuration.
func NewTelegramSender(cfg config.Telegram) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &TelegramSender{api: api, chatID: cfg.ChatID}, nil
}

// Send delivers one digest message. Telegram has no subject line, so it
// becomes the first line of the message.
func (s *TelegramSender) Send(_ context.Context, subject, body string) error {
	msg := tgbotapi.NewMessage(s.chatID, subject+"\n\n"+body)
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
