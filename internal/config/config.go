// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// defaultJWTSecret is only acceptable in development; Load rejects it in
// production mode.
const defaultJWTSecret = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// SurrealDB connection
	DBURL       string
	DBNamespace string
	DBDatabase  string
	DBUser      string
	DBPassword  string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// Read cache
	CacheTTL        time.Duration
	CacheMaxEntries int

	// S3-compatible media storage (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBURL:       envOrDefault("SURREALDB_URL", "ws://localhost:8000"),
		DBNamespace: envOrDefault("SURREALDB_NAMESPACE", "blog"),
		DBDatabase:  envOrDefault("SURREALDB_DATABASE", "blog"),
		DBUser:      envOrDefault("SURREALDB_USER", "root"),
		DBPassword:  envOrDefault("SURREALDB_PASSWORD", "root"),

		JWTSecret: envOrDefault("JWT_SECRET", defaultJWTSecret),
		JWTTTL:    envDuration("JWT_TTL", 7*24*time.Hour),

		CacheTTL:        envDuration("CACHE_TTL", 10*time.Minute),
		CacheMaxEntries: envInt("CACHE_MAX_ENTRIES", 1000),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration reads a duration environment variable (e.g. "10m", "168h"),
// returning a fallback if unset or malformed.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// envInt reads an integer environment variable, returning a fallback if
// unset or malformed.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
