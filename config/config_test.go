package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_POOL_SIZE", "DB_RUN_MIGRATIONS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"REDIS_PREFIX", "JWT_SECRET", "JWT_TOKEN_DURATION", "PORT", "SERVICE_NAME",
		"CORS_ORIGINS", "SEED_FILE", "SEED_SAMPLE_CONTENT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Nil(t, cfg.Store.Postgres)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "8001", cfg.Server.Port)
	assert.Equal(t, "Dept-AI Hub - PBR VITS API", cfg.Server.ServiceName)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Seed.SampleContent)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_POOL_SIZE", "20")
	t.Setenv("DB_RUN_MIGRATIONS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.Store.Postgres)
	assert.Equal(t, "localhost", cfg.Store.Postgres.Host)
	assert.Equal(t, 5432, cfg.Store.Postgres.Port)
	assert.Equal(t, "test_database", cfg.Store.Postgres.DBName)
	assert.Equal(t, 20, cfg.Store.Postgres.MaxSize)
	assert.False(t, cfg.Store.RunMigrations)
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("JWT_TOKEN_DURATION", "forever")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := LoadConfig()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "DB_USER")
	assert.Contains(t, msg, "DB_PASSWORD")
	assert.Contains(t, msg, "DB_PORT")
	assert.Contains(t, msg, "JWT_TOKEN_DURATION")
	assert.Contains(t, msg, "LOG_FORMAT")
}

func TestLoadConfigRedisRequiresAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")

	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "deptaihub", cfg.Store.Redis.Prefix)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://portal.example.edu, http://localhost:3000,")
	t.Setenv("JWT_SECRET", "rotated")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://portal.example.edu", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Auth.UsesDefaultSecret())
}
