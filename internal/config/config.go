package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	HTTPAddr           string
	CORSAllowedOrigins []string
	RateLimitPerMinute int

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Identity provider
	ClerkSecretKey       string
	ClerkAPIURL          string
	ClerkAPITimeout      time.Duration
	ClerkWebhookSecret   string
	JWTPublicKeyPEM      string
	JWTIssuer            string
	JWTAuthorizedParties []string

	// Telegram ops notifications, optional
	TelegramToken  string
	TelegramChatID int64

	// Logging
	LogLevel string
	AppEnv   string
}

// Load reads the environment. A .env file in the working directory is
// applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		HTTPAddr:           ":8080",
		CORSAllowedOrigins: []string{"*"},
		RateLimitPerMinute: 120,
		RedisAddr:          "localhost:6379",
		RedisDB:            0,
		ClerkAPIURL:        "https://api.clerk.com/v1",
		ClerkAPITimeout:    10 * time.Second,
		LogLevel:           "info",
		AppEnv:             "production",
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	cfg.ClerkWebhookSecret = os.Getenv("CLERK_WEBHOOK_SECRET")
	if cfg.ClerkWebhookSecret == "" {
		return nil, fmt.Errorf("CLERK_WEBHOOK_SECRET is required")
	}

	cfg.JWTPublicKeyPEM = os.Getenv("AUTH_JWT_PUBLIC_KEY")
	if cfg.JWTPublicKeyPEM == "" {
		return nil, fmt.Errorf("AUTH_JWT_PUBLIC_KEY is required")
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.RateLimitPerMinute = n
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	cfg.ClerkSecretKey = os.Getenv("CLERK_SECRET_KEY")

	if apiURL := os.Getenv("CLERK_API_URL"); apiURL != "" {
		cfg.ClerkAPIURL = strings.TrimRight(apiURL, "/")
	}

	if timeout := os.Getenv("CLERK_API_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid CLERK_API_TIMEOUT: %w", err)
		}
		cfg.ClerkAPITimeout = d
	}

	cfg.JWTIssuer = os.Getenv("AUTH_JWT_ISSUER")

	if parties := os.Getenv("AUTH_AUTHORIZED_PARTIES"); parties != "" {
		cfg.JWTAuthorizedParties = splitList(parties)
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.AppEnv = env
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.ClerkWebhookSecret == "" {
		return fmt.Errorf("webhook secret is empty")
	}

	if c.JWTPublicKeyPEM == "" {
		return fmt.Errorf("jwt public key is empty")
	}

	if c.ClerkAPITimeout <= 0 {
		return fmt.Errorf("identity API timeout must be positive: %v", c.ClerkAPITimeout)
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate limit per minute must be at least 1")
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// IsDevelopment reports whether the process runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
