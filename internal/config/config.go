package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the lambdas. It is resolved
// once at cold start and treated as immutable afterwards.
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Email  EmailConfig
	Events EventsConfig
	Logger LoggerConfig
}

// AppConfig controls environment-level behavior.
type AppConfig struct {
	Env string
}

// IsDevelopment reports whether error detail may be included in responses.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// StoreConfig holds DynamoDB settings.
type StoreConfig struct {
	TableName string
}

// EmailConfig holds the SES sender identity and the business recipient.
// Either being empty means email is not configured for this deployment;
// sends are then skipped, not failed.
type EmailConfig struct {
	Sender       string
	Recipient    string
	BusinessName string
}

// Configured reports whether both addresses required for dispatch are set.
func (e EmailConfig) Configured() bool {
	return e.Sender != "" && e.Recipient != ""
}

// EventsConfig holds the EventBridge bus used by the stream lambda.
type EventsConfig struct {
	BusName string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables. Names that were
// renamed across deployment iterations are resolved through a prioritized
// lookup so older stacks keep working.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "production"),
		},
		Store: StoreConfig{
			TableName: firstEnv("TABLE_NAME", "SUBMISSIONS_TABLE", "DDB_TABLE"),
		},
		Email: EmailConfig{
			Sender:       firstEnv("SENDER_EMAIL", "FROM_EMAIL", "SES_SENDER"),
			Recipient:    firstEnv("RECIPIENT_EMAIL", "NOTIFICATION_EMAIL", "BUSINESS_EMAIL"),
			BusinessName: getEnv("BUSINESS_NAME", "Horizon Travel"),
		},
		Events: EventsConfig{
			BusName: getEnv("EVENT_BUS_NAME", "travel-submission-events"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}
