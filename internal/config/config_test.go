package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_NAME", "SESSION_TTL", "QUOTE_CACHE_TTL", "STARTING_CASH", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "finance.db", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 60*time.Second, cfg.QuoteCacheTTL)
	assert.True(t, cfg.StartingCash.Equal(decimal.NewFromInt(10000)))
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("QUOTE_CACHE_TTL", "5s")
	t.Setenv("STARTING_CASH", "2500.50")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.QuoteCacheTTL)
	assert.True(t, cfg.StartingCash.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("STARTING_CASH", "-5")

	cfg := LoadConfig()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.StartingCash.Equal(decimal.NewFromInt(10000)))
}
