package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// API client configuration used by rentalctl and any consumer of internal/rental
	API struct {
		// Base URL of the rental API, without the /v1 prefix
		BaseURL string `env:"RENTAL_API_BASE_URL" envDefault:"http://localhost:3000"`

		// Fixed timeout applied to every request
		Timeout time.Duration `env:"RENTAL_API_TIMEOUT" envDefault:"30s"`

		// Bearer token; when empty and credentials are set, rentalctl logs in first
		Token    string `env:"RENTAL_API_TOKEN"`
		Email    string `env:"RENTAL_API_EMAIL"`
		Password string `env:"RENTAL_API_PASSWORD"`

		// Requests per second, 0 disables client side limiting
		RateLimit float64 `env:"RENTAL_API_RATE_LIMIT" envDefault:"0"`
		Burst     int     `env:"RENTAL_API_BURST" envDefault:"1"`
	}

	// Reference API server configuration
	Server struct {
		Port           string   `env:"SERVER_PORT" envDefault:"3000"`
		DBPath         string   `env:"SERVER_DB_PATH" envDefault:"database/rental.db"`
		AllowedOrigins []string `env:"SERVER_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

		// Token handed out by /v1/auth/login and required on every other route
		AuthToken string        `env:"SERVER_AUTH_TOKEN" envDefault:"dev-token"`
		TokenTTL  time.Duration `env:"SERVER_TOKEN_TTL" envDefault:"24h"`

		// Admin account created at startup when its email is unused
		AdminName     string `env:"SERVER_ADMIN_NAME" envDefault:"Administrator"`
		AdminEmail    string `env:"SERVER_ADMIN_EMAIL"`
		AdminPassword string `env:"SERVER_ADMIN_PASSWORD"`

		// Cron spec for the overdue invoice check
		OverdueSchedule string `env:"OVERDUE_CHECK_SCHEDULE" envDefault:"@every 1h"`
	}

	// Notification delivery configuration
	Notifications struct {
		TelegramEnabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
		TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
		TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

		// Maximum number of notifications waiting for delivery
		QueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`

		// Number of delivery workers
		WorkerCount int `env:"NOTIFY_WORKER_COUNT" envDefault:"1"`

		// Maximum number of retries for a failed delivery
		MaxRetries int `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"NOTIFY_RETRY_DELAY" envDefault:"5"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
