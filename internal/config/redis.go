package config

import "github.com/rs/zerolog/log"

// GetRedisURL returns the Redis address for the dedup store, or empty when
// Redis is not configured and the in-memory fallback should be used.
func GetRedisURL() string {
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		log.Warn().Msg("REDIS_URL not set, update dedup will use the in-memory store")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
