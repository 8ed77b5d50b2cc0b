// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vasptech/vaspx-actions/internal/action"
	"github.com/vasptech/vaspx-actions/internal/buildinfo"
	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/config"
	"github.com/vasptech/vaspx-actions/internal/ctxutil"
	"github.com/vasptech/vaspx-actions/internal/logger"
	"github.com/vasptech/vaspx-actions/internal/metrics"
	"github.com/vasptech/vaspx-actions/internal/ratelimit"
	"github.com/vasptech/vaspx-actions/internal/sentry"
	"github.com/vasptech/vaspx-actions/internal/webhook"
)

const serviceName = "vaspx-actions"

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	store          *catalog.Store
	actions        *action.Registry
	senderLimiter  *ratelimit.KeyedLimiter
	webhookHandler *webhook.Handler
	router         *gin.Engine
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken: cfg.BetterStackToken,
	})

	log = log.WithField("service", serviceName)
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog.*Context() calls pick up sender, action and request ID.
	slog.SetDefault(log.Logger)

	log.WithField("version", buildinfo.String()).Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.Info("Better Stack logging enabled")
	}

	sentryCfg := sentry.Config{
		DSN:         cfg.SentryDSN,
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}
	if err := sentry.Initialize(sentryCfg); err != nil {
		// Error tracking is optional; the server runs without it.
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentryCfg.Enabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Error tracking enabled")
	}

	store, err := catalog.LoadFile(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	log.WithField("source", store.Source()).
		WithField("version", store.Version()).
		WithField("templates", store.Len()).
		Info("Response catalog loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	actions := action.NewDefaultRegistry(store)

	senderLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "sender",
		Burst:         cfg.SenderRateBurst,
		RefillRate:    cfg.SenderRateRefill,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		Metrics:       m,
	})

	webhookHandler := webhook.NewHandler(actions, m, log,
		webhook.WithActionToken(cfg.ActionToken),
		webhook.WithSenderLimiter(senderLimiter),
	)

	app := &Application{
		cfg:            cfg,
		logger:         log,
		metrics:        m,
		registry:       registry,
		store:          store,
		actions:        actions,
		senderLimiter:  senderLimiter,
		webhookHandler: webhookHandler,
	}
	app.router = app.newRouter(sentryCfg.Enabled())

	app.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           gzhttp.GzipHandler(app.router),
		ReadHeaderTimeout: config.ServerReadHeader,
		ReadTimeout:       config.ServerRead,
		WriteTimeout:      config.ServerWrite,
		IdleTimeout:       config.ServerIdle,
	}

	log.WithField("actions", actions.Names()).Info("Initialization complete")
	return app, nil
}

// newRouter builds the Gin engine with middleware and routes.
func (a *Application) newRouter(withSentry bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if withSentry {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(a.logger))

	router.GET("/health", a.livenessCheck)
	router.GET("/healthz", a.livenessCheck)
	router.HEAD("/healthz", a.livenessCheck)
	router.GET("/ready", a.readinessCheck)
	router.HEAD("/ready", a.readinessCheck)
	router.GET("/actions", a.webhookHandler.ListActions)
	router.POST("/webhook", bodyLimitMiddleware(a.cfg.MaxBodyBytes), a.webhookHandler.Handle)
	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	return router
}

// Handler returns the HTTP handler serving all routes, without compression.
func (a *Application) Handler() http.Handler {
	return a.router
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// readinessCheck reports ready once every required template is present and
// every action is registered.
func (a *Application) readinessCheck(c *gin.Context) {
	if missing := a.store.Missing(); len(missing) > 0 {
		a.logger.WithField("missing", len(missing)).Warn("Readiness check failed: catalog incomplete")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"reason":  "catalog incomplete",
			"missing": missing,
		})
		return
	}
	if a.actions.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no actions registered",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"templates": a.store.Len(),
		"actions":   a.actions.Len(),
	})
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Serve runs the HTTP server until ctx is canceled or the server fails.
// Shutdown order:
//  1. Stop accepting new requests and drain in-flight calls
//  2. Stop the sender limiter's cleanup loop
//  3. Flush buffered error events
func (a *Application) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown requested")
		return a.shutdown()
	})

	return g.Wait()
}

func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	var err error
	if shutdownErr := a.server.Shutdown(shutdownCtx); shutdownErr != nil {
		a.logger.WithError(shutdownErr).Error("HTTP server shutdown error")
		err = fmt.Errorf("http shutdown: %w", shutdownErr)
	}

	a.senderLimiter.Stop()

	if sentry.IsEnabled() && !sentry.Flush(config.SentryFlush) {
		a.logger.Warn("Sentry flush timed out")
	}

	a.logger.Info("Shutdown complete")
	return err
}

// bodyLimitMiddleware caps the request body so oversized calls fail with
// *http.MaxBytesError during decoding.
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// An upstream correlation ID wins over the one the action handler generates.
		requestID := c.GetHeader(webhook.RequestIDHeader)
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-ID")
		}
		if requestID != "" {
			c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		}

		c.Next()

		status := c.Writer.Status()
		entry := log.WithField("http_method", method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("client_ip", c.ClientIP())

		if requestID == "" {
			requestID = c.Writer.Header().Get(webhook.RequestIDHeader)
		}
		if requestID != "" {
			entry = entry.WithRequestID(requestID)
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request failed")
		case status == http.StatusNotFound:
			entry.Debug("HTTP request not found")
		case status >= 400:
			entry.Warn("HTTP request rejected")
		default:
			entry.Debug("HTTP request completed")
		}
	}
}
