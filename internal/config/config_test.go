package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:             DefaultPort,
		LogLevel:         DefaultLogLevel,
		ShutdownTimeout:  GracefulShutdown,
		MaxBodyBytes:     DefaultMaxBodyBytes,
		SenderRateBurst:  DefaultSenderRateBurst,
		SenderRateRefill: DefaultSenderRateRefill,
		MetricsUsername:  DefaultMetricsUsername,
		SentrySampleRate: 1,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want 1 MiB", cfg.MaxBodyBytes)
	}
	if cfg.ActionToken != "" || cfg.TemplatesPath != "" {
		t.Errorf("optional settings should default to empty, got token=%q path=%q", cfg.ActionToken, cfg.TemplatesPath)
	}
	if cfg.MetricsAuthEnabled() {
		t.Error("metrics auth should be off without a password")
	}
	if cfg.Addr() != ":5055" {
		t.Errorf("Addr() = %q, want :5055", cfg.Addr())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvShutdownTimeout, "5s")
	t.Setenv(EnvActionToken, "secret")
	t.Setenv(EnvSenderRateBurst, "3")
	t.Setenv(EnvSenderRateRefill, "0.5")
	t.Setenv(EnvMetricsPassword, "pw")
	t.Setenv(EnvSentryToken, "tok")
	t.Setenv(EnvSentryHost, "errors.betterstack.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" || cfg.LogLevel != "debug" || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("server settings not read: %+v", cfg)
	}
	if cfg.ActionToken != "secret" {
		t.Errorf("ActionToken = %q, want secret", cfg.ActionToken)
	}
	if cfg.SenderRateBurst != 3 || cfg.SenderRateRefill != 0.5 {
		t.Errorf("rate settings = %v/%v, want 3/0.5", cfg.SenderRateBurst, cfg.SenderRateRefill)
	}
	if !cfg.MetricsAuthEnabled() {
		t.Error("metrics auth should be on with a password")
	}
}

func TestLoad_UnparsableFallsBackToDefault(t *testing.T) {
	t.Setenv(EnvMaxBodyBytes, "lots")
	t.Setenv(EnvShutdownTimeout, "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d, want default", cfg.MaxBodyBytes)
	}
	if cfg.ShutdownTimeout != GracefulShutdown {
		t.Errorf("ShutdownTimeout = %v, want default", cfg.ShutdownTimeout)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	t.Setenv(EnvPort, "99999")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for out-of-range port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:        "bad port",
			mutate:      func(c *Config) { c.Port = "http" },
			errContains: []string{EnvPort},
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			errContains: []string{EnvLogLevel},
		},
		{
			name: "rate limits",
			mutate: func(c *Config) {
				c.SenderRateBurst = 0
				c.SenderRateRefill = -1
			},
			errContains: []string{EnvSenderRateBurst, EnvSenderRateRefill},
		},
		{
			name:        "sentry token without host",
			mutate:      func(c *Config) { c.SentryToken = "tok" },
			errContains: []string{EnvSentryHost},
		},
		{
			name: "sentry dsn makes host optional",
			mutate: func(c *Config) {
				c.SentryToken = "tok"
				c.SentryDSN = "https://k@sentry.example.com/1"
			},
		},
		{
			name: "all problems reported together",
			mutate: func(c *Config) {
				c.MaxBodyBytes = 0
				c.ShutdownTimeout = 0
				c.SentrySampleRate = 2
			},
			errContains: []string{EnvMaxBodyBytes, EnvShutdownTimeout, EnvSentrySampleRate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if len(tt.errContains) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			for _, s := range tt.errContains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("Validate() error %q does not mention %s", err, s)
				}
			}
		})
	}
}
