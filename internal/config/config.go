package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultOrigins are always allowed so local frontend development works
// without extra configuration.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
}

// Config holds runtime configuration shared across the application.
// It is populated once at startup and treated as immutable afterwards.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	SubmissionCollection         string
	FailedNotificationCollection string
	Timeout                      time.Duration
	NotifyTimeout                time.Duration
	FrontendURL                  string
	AllowedOrigins               []string
	SlackWebhookURL              string
	TelegramBotToken             string
	TelegramChatID               string
	SMTPServer                   string
	SMTPPort                     int
	SMTPUser                     string
	SMTPPassword                 string
	RecipientEmail               string
	Logger                       zerolog.Logger
}

// Load reads environment variables and returns a fully populated Config.
// MONGO_URL and DB_NAME are mandatory; every notification channel setting is
// optional and its absence disables the channel.
func Load() Config {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "contact-api").
		Logger()

	mongoURI := strings.TrimSpace(os.Getenv("MONGO_URL"))
	if mongoURI == "" {
		logger.Fatal().Msg("MONGO_URL must be configured")
	}

	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		logger.Fatal().Msg("DB_NAME must be configured")
	}

	timeout := 10 * time.Second
	if v := strings.TrimSpace(os.Getenv("MONGO_CONNECT_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	notifyTimeout := 15 * time.Second
	if v := strings.TrimSpace(os.Getenv("NOTIFY_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			notifyTimeout = parsed
		}
	}

	frontendURL := strings.TrimSpace(os.Getenv("FRONTEND_URL"))

	smtpPort := 0
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.Warn().Str("value", raw).Msg("SMTP_PORT is not a valid port, email channel disabled")
		} else {
			smtpPort = parsed
		}
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     mongoURI,
		MongoDatabase:                dbName,
		SubmissionCollection:         envOrDefault("SUBMISSION_COLLECTION", "contact_submissions"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		NotifyTimeout:                notifyTimeout,
		FrontendURL:                  frontendURL,
		AllowedOrigins:               allowedOrigins(frontendURL),
		SlackWebhookURL:              strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
		TelegramBotToken:             strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:               strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		SMTPServer:                   strings.TrimSpace(os.Getenv("SMTP_SERVER")),
		SMTPPort:                     smtpPort,
		SMTPUser:                     strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPassword:                 os.Getenv("SMTP_PASSWORD"),
		RecipientEmail:               strings.TrimSpace(os.Getenv("RECIPIENT_EMAIL")),
		Logger:                       logger,
	}

	return cfg
}

// allowedOrigins returns the fixed allow-list plus the production frontend
// origin when one is configured.
func allowedOrigins(frontendURL string) []string {
	origins := append([]string(nil), defaultOrigins...)
	if frontendURL != "" {
		origins = append(origins, frontendURL)
	}
	return origins
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
