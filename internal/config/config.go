package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// MaxPageValue bounds skip/limit query parameters.
const MaxPageValue = math.MaxInt32

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret    string
	JWTLifetime  time.Duration
	JWTAudiences []string

	// Pagination
	DefaultSkip  int
	DefaultLimit int

	// Webhook delivery
	WebhookTimeout  time.Duration
	WebhookAttempts int

	// Seed data
	SeedPriorities []string
	SeedCategories []string

	// Logging
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "todos_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTLifetime:  parseDuration(getEnv("JWT_LIFETIME", "12h")),
		JWTAudiences: parseCSV(getEnv("JWT_AUDIENCES", "todos:auth,todos:verify")),

		DefaultSkip:  parseInt(getEnv("PAGE_DEFAULT_SKIP", "0"), 0),
		DefaultLimit: parseInt(getEnv("PAGE_DEFAULT_LIMIT", "100"), 100),

		WebhookTimeout:  parseDuration(getEnv("WEBHOOK_TIMEOUT", "10s")),
		WebhookAttempts: parseInt(getEnv("WEBHOOK_ATTEMPTS", "3"), 3),

		SeedPriorities: parseCSV(getEnv("SEED_PRIORITIES", "Low,Medium,High")),
		SeedCategories: parseCSV(getEnv("SEED_CATEGORIES", "Work,Personal,Shopping")),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
