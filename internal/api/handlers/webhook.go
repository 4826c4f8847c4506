package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/russhil/telegram-ai-calendar/internal/config"
	"github.com/russhil/telegram-ai-calendar/internal/dedup"
	"github.com/russhil/telegram-ai-calendar/internal/intent"
	"github.com/russhil/telegram-ai-calendar/internal/telegram"
	"github.com/russhil/telegram-ai-calendar/pkg/httpext"
	"github.com/russhil/telegram-ai-calendar/pkg/ratelimit"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

const greetingReply = "Hi! Send me event commands in natural language."

// Resolver extracts an intent from user text.
type Resolver interface {
	Resolve(ctx context.Context, text string) intent.Intent
}

// Dispatcher executes an intent and produces the reply text.
type Dispatcher interface {
	Dispatch(ctx context.Context, in intent.Intent) string
}

// Webhook handles inbound Telegram deliveries. Whatever fails inside a
// delivery, the response is a 200 ack; a non-success status would put the
// update back into Telegram's redelivery queue.
type Webhook struct {
	resolver   Resolver
	dispatcher Dispatcher
	sender     telegram.Sender
	dedup      dedup.Store
	limiter    *ratelimit.Limiter
	limit      config.RateLimitConfig
	secret     string
}

func NewWebhook(resolver Resolver, dispatcher Dispatcher, sender telegram.Sender, store dedup.Store, limit config.RateLimitConfig, secret string) *Webhook {
	return &Webhook{
		resolver:   resolver,
		dispatcher: dispatcher,
		sender:     sender,
		dedup:      store,
		limiter:    ratelimit.NewLimiter(limit.Window, limit.MaxHits),
		limit:      limit,
		secret:     secret,
	}
}

func (h *Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	// A bad secret is forged traffic, not a Telegram delivery; rejecting it
	// cannot cause a redelivery storm.
	if h.secret != "" && r.Header.Get(secretTokenHeader) != h.secret {
		log.Warn().Str("remote", r.RemoteAddr).Msg("Webhook secret mismatch")
		httpext.JsonError(w, "Invalid webhook secret", http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed webhook payload")
		httpext.JsonAck(w)
		return
	}

	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring update without chat text")
		httpext.JsonAck(w)
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text
	reqID := uuid.New().String()[:8]

	logger := log.With().Str("req_id", reqID).Int64("chat_id", chatID).Logger()

	if h.dedup.Seen(r.Context(), update.UpdateID) {
		logger.Info().Int("update_id", update.UpdateID).Msg("Dropping redelivered update")
		httpext.JsonAck(w)
		return
	}

	if text == "/start" || strings.HasPrefix(text, "/start ") {
		h.reply(&logger, chatID, greetingReply)
		httpext.JsonAck(w)
		return
	}

	if h.limit.Enabled && !h.limiter.Allow(chatID) {
		logger.Warn().Msg("Chat over message rate limit, dropping update")
		httpext.JsonAck(w)
		return
	}

	resolved := h.resolver.Resolve(r.Context(), text)
	logger.Info().Str("action", string(resolved.Action)).Msg("Resolved intent")

	replyText := h.dispatcher.Dispatch(r.Context(), resolved)
	h.reply(&logger, chatID, replyText)

	httpext.JsonAck(w)
}

// reply is best-effort: a send failure is logged and never affects the ack.
func (h *Webhook) reply(logger *zerolog.Logger, chatID int64, text string) {
	if err := h.sender.Send(chatID, text); err != nil {
		logger.Error().Err(err).Msg("Failed to send reply")
	}
}
