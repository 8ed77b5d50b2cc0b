package config

import "time"

// HTTP server timeouts. Action calls carry small JSON bodies and are answered
// from memory, so every limit here is generous relative to real work.
const (
	// ServerReadHeader bounds how long a client may take to send headers.
	ServerReadHeader = 5 * time.Second

	// ServerRead is the HTTP server read timeout for action calls.
	ServerRead = 10 * time.Second

	// ServerWrite is the HTTP server write timeout.
	ServerWrite = 15 * time.Second

	// ServerIdle is the HTTP server idle timeout for keep-alive connections.
	ServerIdle = 120 * time.Second
)

// Background job intervals
const (
	// RateLimiterCleanupInterval is how often inactive sender rate limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the default timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second

	// SentryFlush bounds how long shutdown waits for buffered error events.
	SentryFlush = 2 * time.Second
)
