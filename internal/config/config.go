package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// GCP backend
	GCPProjectID  string
	StorageBucket string
	SignedURLTTL  time.Duration

	// Redis
	RedisURL string

	// Auth
	JWTSecret   string
	AdminEmails []string
}

func Load() *Config {
	signedURLMinutes, _ := strconv.Atoi(getEnv("SIGNED_URL_TTL_MINUTES", "60"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		GCPProjectID:  getEnv("GCP_PROJECT_ID", ""),
		StorageBucket: getEnv("STORAGE_BUCKET", ""),
		SignedURLTTL:  time.Duration(signedURLMinutes) * time.Minute,

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		AdminEmails: splitEmails(getEnv("ADMIN_EMAILS", "")),
	}
}

func splitEmails(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
