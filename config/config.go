// Package config provides configuration management for the portal backend.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
// Every problem found while loading is collected, so a misconfigured deployment
// reports all of its mistakes at once instead of one per restart.
package config

import (
	"fmt"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the historical static signing secret of the portal.
// It stays the default so tokens keep verifying across deployments that never set
// JWT_SECRET; production deployments are expected to override it.
const DefaultJWTSecret = "pbr_vits_ai_dept_secret_key_2024"

// Supported document store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// PoolConfig represents configuration for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// RedisConfig holds the connection settings of the Redis document backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Key prefix for every collection list
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Driver        string // memory, postgres or redis
	Postgres      *PoolConfig
	RunMigrations bool // Apply embedded migrations on startup (postgres only)
	Redis         *RedisConfig
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing session tokens
	TokenDuration time.Duration // Lifetime of a session token
}

// UsesDefaultSecret reports whether the built-in signing secret is in use.
func (c *AuthConfig) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port        string   // Port for the HTTP server
	ServiceName string   // Reported by the health endpoint
	CORSOrigins []string // Allowed CORS origins
}

// SeedConfig controls startup seeding of users and sample content.
type SeedConfig struct {
	File          string // Optional path to a YAML seed file; empty means the embedded default
	SampleContent bool   // Seed sample notices, events, timetable, resources and faculty
}

// LogConfig controls the process-wide slog logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Store  *StoreConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Seed   *SeedConfig
	Log    *LogConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a bool.
// Accepts anything strconv.ParseBool accepts ("1", "true", "FALSE", ...).
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	if valueDuration <= 0 {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: duration must be positive, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size between 5 and 100, recording an error when it had to clamp.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Store Configuration
	driver := strings.ToLower(getOptionalEnv("STORE_DRIVER", StoreDriverMemory))
	storeConfig := &StoreConfig{Driver: driver}

	switch driver {
	case StoreDriverMemory:
		// Nothing else to configure.
	case StoreDriverPostgres:
		storeConfig.Postgres = &PoolConfig{
			Host:     getOptionalEnv("DB_HOST", "localhost"),
			Port:     getOptionalEnvInt("DB_PORT", 5432, &errors),
			User:     getRequiredEnv("DB_USER", &errors),
			Password: getRequiredEnv("DB_PASSWORD", &errors),
			DBName:   getOptionalEnv("DB_NAME", "test_database"),
			MaxSize:  clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors),
		}
		storeConfig.RunMigrations = getOptionalEnvBool("DB_RUN_MIGRATIONS", true, &errors)
	case StoreDriverRedis:
		storeConfig.Redis = &RedisConfig{
			Addr:     getRequiredEnv("REDIS_ADDR", &errors),
			Password: getOptionalEnv("REDIS_PASSWORD", ""),
			DB:       getOptionalEnvInt("REDIS_DB", 0, &errors),
			Prefix:   getOptionalEnv("REDIS_PREFIX", "deptaihub"),
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid value for STORE_DRIVER: expected one of memory, postgres, redis, got '%s'", driver))
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:     getOptionalEnv("JWT_SECRET", DefaultJWTSecret),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", 7*24*time.Hour, &errors),
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		// Server port is a string because it's used directly in the listen address (":8001").
		Port:        getOptionalEnv("PORT", "8001"),
		ServiceName: getOptionalEnv("SERVICE_NAME", "Dept-AI Hub - PBR VITS API"),
		CORSOrigins: splitList(getOptionalEnv("CORS_ORIGINS", "*")),
	}
	if len(serverConfig.CORSOrigins) == 0 {
		serverConfig.CORSOrigins = []string{"*"}
	}

	seedConfig := &SeedConfig{
		File:          getOptionalEnv("SEED_FILE", ""),
		SampleContent: getOptionalEnvBool("SEED_SAMPLE_CONTENT", true, &errors),
	}

	logConfig := &LogConfig{
		Level:  strings.ToLower(getOptionalEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getOptionalEnv("LOG_FORMAT", "json")),
	}
	if logConfig.Format != "json" && logConfig.Format != "text" {
		errors = append(errors, fmt.Sprintf("invalid value for LOG_FORMAT: expected json or text, got '%s'", logConfig.Format))
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Store:  storeConfig,
		Auth:   authConfig,
		Server: serverConfig,
		Seed:   seedConfig,
		Log:    logConfig,
	}, nil
}
