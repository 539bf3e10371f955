package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "recipes")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.PasswordMinLen)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("PASSWORD_MIN_LEN", "8")
	t.Setenv("DB_MIGRATE", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 8, cfg.PasswordMinLen)
	assert.False(t, cfg.DBMigrate)
}

func TestLoad_MemoryDriverSkipsDB(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DBDriver)
}

func TestLoad_ReportsAllMissing(t *testing.T) {
	for _, k := range []string{"APP_PORT", "TOKEN_SECRET", "DB_USER", "DB_HOST", "DB_NAME", "DB_DRIVER"} {
		t.Setenv(k, "")
	}
	t.Setenv("BCRYPT_COST", "abc")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{"APP_PORT", "TOKEN_SECRET", "DB_USER", "DB_HOST", "DB_NAME", "BCRYPT_COST"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_RejectsUnknownDriverAndNegativeTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL_HOURS", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Contains(t, err.Error(), "TOKEN_TTL_HOURS")
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadRateLimitConfig_BurstAndEvery(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 7, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 500*time.Millisecond, cfg.RefillInterval)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "nonsense")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, time.Second, cfg.TTL)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadQueueConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")

	cfg := LoadQueueConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.URL)
	assert.Equal(t, "recipe.events", cfg.Queue)
	assert.Equal(t, "logs/audit.log", cfg.AuditLogPath)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "1")

	cfg := LoadRedisConfig()
	assert.Equal(t, "cache:6380", cfg.Addr)
	assert.Equal(t, 2, cfg.DB)
	assert.True(t, cfg.TLS)

	t.Setenv("REDIS_HOST", "h")
	t.Setenv("REDIS_PORT", "1")
	assert.Equal(t, "h:1", LoadRedisConfig().Addr)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
