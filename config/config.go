package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration, read from the environment.
type Config struct {
	Port     string
	DBURL    string
	LogLevel string

	JWTSecret string

	DueSyncPolicy          string
	AssignRequireAgentRole bool
	ReminderCron           string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	UploadDir string

	SeedAdminEmail    string
	SeedAdminPassword string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBURL:    getEnv("DATABASE_URL", os.Getenv("DB_URL")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		DueSyncPolicy:          getEnv("DUE_SYNC_POLICY", "mirror"),
		AssignRequireAgentRole: getBool("ASSIGN_REQUIRE_AGENT_ROLE", true),
		ReminderCron:           getEnv("REMINDER_CRON", "0 8 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@loans.local"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@loans.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DueSyncPolicy {
	case "mirror", "freeze-settled":
	default:
		return nil, fmt.Errorf("DUE_SYNC_POLICY must be mirror or freeze-settled, got %q", cfg.DueSyncPolicy)
	}
	return cfg, nil
}

// SMTPEnabled reports whether reminder emails can be sent.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return defaultVal
	}
	return b
}
