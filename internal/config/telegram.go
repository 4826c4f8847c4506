package config

import "github.com/rs/zerolog/log"

// GetTelegramToken returns the bot token used for outbound replies.
func GetTelegramToken() string {
	value := GetEnvOrDefault("TELEGRAM_TOKEN", "")
	if value == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN environment variable not set")
	}
	return value
}

// GetWebhookSecret returns the expected X-Telegram-Bot-Api-Secret-Token
// header value, or empty when the webhook is not secret-protected.
func GetWebhookSecret() string {
	return GetEnvOrDefault("TELEGRAM_SECRET_TOKEN", "")
}
