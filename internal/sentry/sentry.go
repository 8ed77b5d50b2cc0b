// Package sentry initializes error tracking through the Sentry SDK. Events go
// either to a plain Sentry DSN or to Better Stack Errors, which accepts the
// Sentry protocol when given an application token and ingesting host.
package sentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds error tracking settings.
type Config struct {
	// DSN is a full Sentry DSN. It takes precedence over Token and Host.
	DSN string

	// Token is the Better Stack Errors application token.
	Token string

	// Host is the Better Stack Errors ingesting host (e.g., "errors.betterstack.com").
	Host string

	// Environment identifies the deployment environment (e.g., "production", "staging").
	Environment string

	// Release identifies the application release version.
	Release string

	// SampleRate controls error sampling (0.0-1.0, default 1.0 = 100%).
	SampleRate float64

	// Debug enables Sentry SDK debug logging.
	Debug bool
}

// Enabled reports whether the config names a destination.
func (c Config) Enabled() bool {
	return c.DSN != "" || c.Token != ""
}

// ResolveDSN returns the DSN to report to. Better Stack needs a project ID
// in the path, which it ignores: https://$TOKEN@$HOST/1
func (c Config) ResolveDSN() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if c.Token == "" {
		return "", nil
	}
	if c.Host == "" {
		return "", errors.New("sentry host is required when token is provided")
	}
	return fmt.Sprintf("https://%s@%s/1", c.Token, c.Host), nil
}

// Initialize sets up the Sentry SDK. A config without DSN or token leaves
// error tracking disabled and returns nil.
func Initialize(cfg Config) error {
	if !cfg.Enabled() {
		return nil
	}

	dsn, err := cfg.ResolveDSN()
	if err != nil {
		return err
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to be sent to the server.
// Returns true if all events were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureExceptionWithContext captures an error on the request's hub, tagging
// it with the action and sender when given.
func CaptureExceptionWithContext(ctx context.Context, err error, tags map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			if v != "" {
				scope.SetTag(k, v)
			}
		}
		hub.CaptureException(err)
	})
}
