package config

// GetListenAddr returns the address the HTTP server binds to.
func GetListenAddr() string {
	return ":" + GetEnvOrDefault("PORT", "8080")
}

// GetBotTimezone returns the fixed IANA timezone applied to every calendar
// write. The bot never derives it from the user or chat locale.
func GetBotTimezone() string {
	return GetEnvOrDefault("BOT_TZ", "Asia/Kolkata")
}
