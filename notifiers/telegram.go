package notifiers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kova98/rivalwatch/data"
)

// messageSender is satisfied by *tgbotapi.BotAPI.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramAlerter posts high-impact updates to a single chat.
type TelegramAlerter struct {
	bot    messageSender
	chatID int64
}

func NewTelegramAlerter(bot messageSender, chatID int64) *TelegramAlerter {
	return &TelegramAlerter{bot: bot, chatID: chatID}
}

func (a *TelegramAlerter) Name() string { return "telegram" }

func (a *TelegramAlerter) Alert(_ context.Context, update data.CompetitorUpdate) error {
	text := fmt.Sprintf("🚨 %s\n\nCategory: %s\nImpact: %d/100\n\nLink: %s",
		Message(update.CompetitorName, update.Title),
		update.Category,
		update.ImpactScore,
		update.URL,
	)

	msg := tgbotapi.NewMessage(a.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := a.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
