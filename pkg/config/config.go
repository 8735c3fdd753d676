package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rallyhq/rally/pkg/observability"
	"github.com/rallyhq/rally/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Authentication configuration
	Auth AuthConfig

	// Storage configuration
	Storage storage.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	CORSOrigins     []string
}

// AuthConfig holds authentication settings.
//
// JWTSecret is required and must never be logged. TokenTTL of zero issues
// non-expiring tokens.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Auth:          loadAuthConfig(),
		Storage:       loadStorageConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	origins := strings.Split(getEnv("RALLY_CORS_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return ServerConfig{
		Host:            getEnv("RALLY_HOST", "0.0.0.0"),
		Port:            getEnv("RALLY_PORT", "8080"),
		ReadTimeout:     getEnvDuration("RALLY_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("RALLY_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("RALLY_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("RALLY_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    int64(getEnvInt("RALLY_MAX_BODY_BYTES", 1<<20)),
		CORSOrigins:     origins,
	}
}

// loadAuthConfig loads authentication configuration from environment
func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:  getEnv("RALLY_JWT_SECRET", ""),
		TokenTTL:   getEnvDuration("RALLY_TOKEN_TTL", 0),
		BcryptCost: getEnvInt("RALLY_BCRYPT_COST", 0),
	}
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if storageType := getEnv("RALLY_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}
	if path := getEnv("RALLY_SQLITE_PATH", ""); path != "" {
		cfg.SQLitePath = path
	}
	if url := getEnv("RALLY_POSTGRES_URL", ""); url != "" {
		cfg.PostgresURL = url
	}
	if maxConns := getEnvInt("RALLY_MAX_OPEN_CONNS", 0); maxConns > 0 {
		cfg.MaxOpenConns = maxConns
	}
	if idleConns := getEnvInt("RALLY_MAX_IDLE_CONNS", 0); idleConns > 0 {
		cfg.MaxIdleConns = idleConns
	}
	if lifetime := getEnvDuration("RALLY_CONN_MAX_LIFETIME", 0); lifetime > 0 {
		cfg.ConnMaxLifetime = lifetime
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("RALLY_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("RALLY_METRICS_ENABLED", true),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("RALLY_JWT_SECRET is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid RALLY_PORT: %s", c.Server.Port)
	}

	switch c.Storage.Type {
	case "memory", "sqlite":
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("RALLY_POSTGRES_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("invalid RALLY_STORAGE_TYPE: %s", c.Storage.Type)
	}

	return nil
}

// getEnv returns an environment variable or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
