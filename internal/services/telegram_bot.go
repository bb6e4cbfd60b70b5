package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService pushes pipeline events into a sales-team chat.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramService connects the bot. Returns (nil, nil) when no token is
// configured so callers can wire the integration conditionally.
func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) SendMessage(text string) error {
	if t == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
