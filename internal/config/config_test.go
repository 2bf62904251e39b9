package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 12*time.Hour, cfg.JWTLifetime)
	assert.Equal(t, []string{"todos:auth", "todos:verify"}, cfg.JWTAudiences)
	assert.Equal(t, 0, cfg.DefaultSkip)
	assert.Equal(t, 100, cfg.DefaultLimit)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, 3, cfg.WebhookAttempts)
	assert.Equal(t, []string{"Low", "Medium", "High"}, cfg.SeedPriorities)
	assert.Equal(t, []string{"Work", "Personal", "Shopping"}, cfg.SeedCategories)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_AUDIENCES", "api:main, api:legacy ,")
	t.Setenv("WEBHOOK_ATTEMPTS", "5")
	t.Setenv("WEBHOOK_TIMEOUT", "30s")
	t.Setenv("PAGE_DEFAULT_LIMIT", "25")

	cfg := Load()
	assert.Equal(t, []string{"api:main", "api:legacy"}, cfg.JWTAudiences)
	assert.Equal(t, 5, cfg.WebhookAttempts)
	assert.Equal(t, 30*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, 25, cfg.DefaultLimit)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WEBHOOK_ATTEMPTS", "lots")
	t.Setenv("JWT_LIFETIME", "forever")

	cfg := Load()
	assert.Equal(t, 3, cfg.WebhookAttempts)
	assert.Equal(t, 10*time.Second, cfg.JWTLifetime)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "todos",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db user=app password=secret dbname=todos port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
