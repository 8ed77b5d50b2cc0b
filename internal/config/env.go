package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "VASPX_PORT"
	EnvLogLevel        = "VASPX_LOG_LEVEL"
	EnvShutdownTimeout = "VASPX_SHUTDOWN_TIMEOUT"

	// Action endpoint
	EnvActionToken   = "VASPX_ACTION_TOKEN"
	EnvTemplatesPath = "VASPX_TEMPLATES_PATH"
	EnvMaxBodyBytes  = "VASPX_MAX_BODY_BYTES"

	// Rate Limits
	EnvSenderRateBurst  = "VASPX_SENDER_RATE_BURST"
	EnvSenderRateRefill = "VASPX_SENDER_RATE_REFILL"

	// Metrics Auth
	EnvMetricsUsername = "VASPX_METRICS_USERNAME"
	EnvMetricsPassword = "VASPX_METRICS_PASSWORD"

	// Sentry
	EnvSentryDSN         = "VASPX_SENTRY_DSN"
	EnvSentryToken       = "VASPX_SENTRY_TOKEN"
	EnvSentryHost        = "VASPX_SENTRY_HOST"
	EnvSentryEnvironment = "VASPX_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "VASPX_SENTRY_SAMPLE_RATE"

	// Better Stack Logs
	EnvBetterStackToken = "VASPX_BETTERSTACK_TOKEN"
)
