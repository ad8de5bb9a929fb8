package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret string

	WebhookURL    string
	WebhookSecret string
	WebhookRate   int

	SheetID              string
	SheetWorksheet       string
	SheetCredentialsFile string
	SyncSchedule         string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables. Values in a
// .env file in the working directory are applied first without overriding
// variables that are already set.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	rate, err := strconv.Atoi(getEnv("WEBHOOK_RATE", "5"))
	if err != nil {
		return nil, fmt.Errorf("WEBHOOK_RATE must be an integer: %w", err)
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DBConn:               getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=realty sslmode=disable"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		WebhookURL:           getEnv("WEBHOOK_URL", ""),
		WebhookSecret:        getEnv("WEBHOOK_SECRET", ""),
		WebhookRate:          rate,
		SheetID:              getEnv("SHEET_ID", ""),
		SheetWorksheet:       getEnv("SHEET_WORKSHEET", ""),
		SheetCredentialsFile: getEnv("SHEET_CREDENTIALS_FILE", ""),
		SyncSchedule:         getEnv("SYNC_SCHEDULE", "0 0 */6 * * *"),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "reports@localhost"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SheetID != "" && cfg.SheetCredentialsFile == "" {
		return nil, fmt.Errorf("SHEET_CREDENTIALS_FILE is required when SHEET_ID is set")
	}

	return cfg, nil
}

// SheetsEnabled reports whether a spreadsheet store is configured
func (c *Config) SheetsEnabled() bool {
	return c.SheetID != ""
}

// WebhookEnabled reports whether an address intake webhook is configured
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
