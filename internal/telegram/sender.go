// Package telegram wraps the Bot API client used for outbound replies.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Sender delivers a text reply to a chat. Delivery is at-most-once,
// best-effort: callers log failures and never retry.
type Sender interface {
	Send(chatID int64, text string) error
}

type BotSender struct {
	bot *tgbotapi.BotAPI
}

// NewSender authenticates against the Bot API. The token is validated with
// a getMe call, so a bad token fails startup rather than the first reply.
func NewSender(token string) (*BotSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", bot.Self.UserName).Msg("Authenticated with Telegram Bot API")
	return &BotSender{bot: bot}, nil
}

func (s *BotSender) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.bot.Send(msg)
	return err
}
