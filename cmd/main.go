package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/russhil/telegram-ai-calendar/internal/api/handlers"
	"github.com/russhil/telegram-ai-calendar/internal/calendar"
	"github.com/russhil/telegram-ai-calendar/internal/config"
	"github.com/russhil/telegram-ai-calendar/internal/dedup"
	"github.com/russhil/telegram-ai-calendar/internal/dispatch"
	"github.com/russhil/telegram-ai-calendar/internal/intent"
	"github.com/russhil/telegram-ai-calendar/internal/telegram"
)

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Every required config value is read here; a missing one fails startup
	// instead of the first request.
	timezone := config.GetBotTimezone()

	oauthConf, oauthToken := config.GetGoogleOAuth()
	gateway, err := calendar.NewGoogleGateway(ctx, oauthConf, oauthToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise calendar gateway")
	}

	sender, err := telegram.NewSender(config.GetTelegramToken())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise Telegram sender")
	}

	resolver := intent.NewResolver(openai.NewClient(config.GetOpenAIKey()), config.GetOpenAIModel(), timezone)
	dispatcher := dispatch.NewDispatcher(gateway, timezone)

	var redisClient *redis.Client
	if url := config.GetRedisURL(); url != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     url,
			Password: config.GetRedisPassword(),
		})
	}
	store := dedup.NewStore(redisClient)

	webhook := handlers.NewWebhook(resolver, dispatcher, sender, store, config.GetRateLimitConfig(), config.GetWebhookSecret())

	srv := &http.Server{
		Addr:    config.GetListenAddr(),
		Handler: handlers.NewRouter(webhook),
		// One delivery can spend up to 30s each on the completion call and
		// two calendar calls before replying.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  time.Minute,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown did not complete cleanly")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("ListenAndServe error")
	}
}

func setupLogging() {
	level, err := zerolog.ParseLevel(config.GetEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
