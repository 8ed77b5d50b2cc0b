// Package config provides application configuration management.
// It loads settings from environment variables (optionally seeded from a
// .env file) and applies defaults for the server, the action endpoint,
// rate limits and observability sinks.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultPort             = "5055"
	DefaultLogLevel         = "info"
	DefaultMaxBodyBytes     = 1 << 20
	DefaultSenderRateBurst  = 20.0
	DefaultSenderRateRefill = 1.0
	DefaultMetricsUsername  = "prometheus"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Action Endpoint
	ActionToken   string // Shared secret expected in the token query parameter (empty = open)
	TemplatesPath string // YAML catalog overriding the embedded one (empty = embedded)
	MaxBodyBytes  int64  // Largest accepted action call body

	// Rate Limits (Token Bucket Algorithm)
	SenderRateBurst  float64 // Maximum burst tokens per sender
	SenderRateRefill float64 // Tokens refilled per second per sender

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Error Tracking
	SentryDSN         string
	SentryToken       string // Better Stack Errors token, used when SentryDSN is empty
	SentryHost        string
	SentryEnvironment string
	SentrySampleRate  float64

	// Log Shipping
	BetterStackToken string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, DefaultPort),
		LogLevel:        strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		ActionToken:   getEnv(EnvActionToken, ""),
		TemplatesPath: getEnv(EnvTemplatesPath, ""),
		MaxBodyBytes:  int64(getIntEnv(EnvMaxBodyBytes, DefaultMaxBodyBytes)),

		SenderRateBurst:  getFloatEnv(EnvSenderRateBurst, DefaultSenderRateBurst),
		SenderRateRefill: getFloatEnv(EnvSenderRateRefill, DefaultSenderRateRefill),

		MetricsUsername: getEnv(EnvMetricsUsername, DefaultMetricsUsername),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken: getEnv(EnvBetterStackToken, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be a port number, got %q", EnvPort, c.Port))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%s must be one of debug, info, warn, error, got %q", EnvLogLevel, c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxBodyBytes, c.MaxBodyBytes))
	}
	if c.SenderRateBurst < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %v", EnvSenderRateBurst, c.SenderRateBurst))
	}
	if c.SenderRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSenderRateRefill, c.SenderRateRefill))
	}
	if c.SentryToken != "" && c.SentryDSN == "" && c.SentryHost == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvSentryHost, EnvSentryToken))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}
	if c.MetricsPassword != "" && c.MetricsUsername == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvMetricsUsername, EnvMetricsPassword))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// MetricsAuthEnabled reports whether /metrics requires Basic Auth.
func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsPassword != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := getEnv(key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := getEnv(key, ""); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := getEnv(key, ""); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
