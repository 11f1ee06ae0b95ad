package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"creatorlink/internal/api/clerk"
	"creatorlink/internal/auth"
	"creatorlink/internal/config"
	"creatorlink/internal/logger"
	"creatorlink/internal/notify"
	"creatorlink/internal/server"
	"creatorlink/internal/server/handlers"
	"creatorlink/internal/service"
	"creatorlink/internal/storage/postgres"
	"creatorlink/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting creatorlink API",
		zap.String("log_level", cfg.LogLevel),
		zap.String("env", cfg.AppEnv),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	identity := clerk.New(cfg.ClerkAPIURL, cfg.ClerkSecretKey, cfg.ClerkAPITimeout, log)
	if cfg.ClerkSecretKey == "" {
		log.Warn("CLERK_SECRET_KEY is not set, identity API calls will be rejected")
	}

	tokens, err := auth.NewVerifier(cfg.JWTPublicKeyPEM, cfg.JWTIssuer, cfg.JWTAuthorizedParties)
	if err != nil {
		log.Fatal("failed to create session verifier", zap.Error(err))
	}

	webhooks, err := auth.NewWebhookVerifier(cfg.ClerkWebhookSecret)
	if err != nil {
		log.Fatal("failed to create webhook verifier", zap.Error(err))
	}

	var notifier service.Notifier = notify.Noop{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, "", log)
		if err != nil {
			log.Fatal("failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
		log.Info("telegram notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	svc := service.New(store, cache, identity, notifier, log)

	srv := server.New(cfg, server.Deps{
		Service:     svc,
		Tokens:      tokens,
		Webhooks:    webhooks,
		RateCounter: cache,
		Backends: map[string]handlers.Pinger{
			"postgres": store,
			"redis":    cache,
		},
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("press Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")
}
