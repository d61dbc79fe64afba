package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string // Optional: issuer claim for mailed action tokens (default: opsdeck-console)
	ConsoleURL    string // Optional: base URL mailed links point at (default: http://localhost:3000)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./console.db)
	PepperFile    string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	TokenSeedFile string // Optional: path to signing seed for action tokens; empty means ephemeral keys

	AdminEmail    string // Optional: seed admin account when the database is empty
	AdminPassword string // Optional: password for the seed admin

	MailMode     string // Optional: mail delivery mode (smtp, log) (default: log)
	SMTPHost     string // Required when MailMode=smtp
	SMTPPort     int    // Optional: SMTP port (default: 587)
	SMTPUsername string // Optional: SMTP auth username
	SMTPPassword string // Optional: SMTP auth password
	SMTPFrom     string // Required when MailMode=smtp: From address

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SessionTTL           time.Duration // Session lifetime (default: 720h)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("CONSOLE_ISSUER", "opsdeck-console"),
		ConsoleURL:    getEnvOrDefault("CONSOLE_URL", "http://localhost:3000"),
		DatabaseFile:  getEnvOrDefault("CONSOLE_DATABASE_FILE", "console.db"),
		PepperFile:    getEnvOrDefault("CONSOLE_PEPPER_FILE", "pepper"),
		TokenSeedFile: os.Getenv("CONSOLE_TOKEN_SEED_FILE"),

		AdminEmail:    os.Getenv("CONSOLE_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("CONSOLE_ADMIN_PASSWORD"),

		MailMode:     getEnvOrDefault("CONSOLE_MAIL_MODE", "log"),
		SMTPHost:     os.Getenv("CONSOLE_SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("CONSOLE_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("CONSOLE_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("CONSOLE_SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("CONSOLE_SMTP_FROM"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
