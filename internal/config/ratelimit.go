package config

import "time"

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

// GetRateLimitConfig returns the per-chat message limit applied inside the
// webhook handler. Over-limit messages are acknowledged and dropped; the
// HTTP layer never rejects a delivery.
func GetRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: GetEnvOrDefault("RATELIMIT_ENABLED", "true") == "true",
		MaxHits: parseEnvInt("RATELIMIT_CHAT_MESSAGES", 20), // 20 messages per minute per chat
		Window:  time.Minute,
	}
}
