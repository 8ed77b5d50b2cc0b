package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action call outcomes used as the status label.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusUnknown     = "unknown_action"
	StatusRateLimited = "rate_limited"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Action metrics
	ActionRequestsTotal   *prometheus.CounterVec
	ActionDurationSeconds *prometheus.HistogramVec

	// Utterance analysis metrics
	ProductMentionsTotal *prometheus.CounterVec
	MentionSetSize       *prometheus.CounterVec

	// Reply metrics
	ResponseTemplateTotal *prometheus.CounterVec
	SlotEventsTotal       *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		ActionRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_action_requests_total",
				Help: "Total number of action calls by action and status",
			},
			[]string{"action", "status"},
		),

		ActionDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vaspx_action_duration_seconds",
				Help:    "Action handling duration in seconds by action",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"action"},
		),

		ProductMentionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_product_mentions_total",
				Help: "Total number of product mentions detected in utterances",
			},
			[]string{"product"},
		),

		MentionSetSize: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_mention_set_size",
				Help: "Number of analyzed utterances by count of distinct products mentioned",
			},
			[]string{"size"}, // size: 0..4
		),

		ResponseTemplateTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_response_template_total",
				Help: "Total number of replies sent by template ID",
			},
			[]string{"template"},
		),

		SlotEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_slot_events_total",
				Help: "Total number of slot updates emitted by slot name",
			},
			[]string{"slot"},
		),

		RateLimiterDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter"}, // limiter: sender
		),

		HTTPErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaspx_http_errors_total",
				Help: "Total HTTP errors returned by type",
			},
			[]string{"error_type"}, // error_type: bad_request, unknown_action, unauthorized, rate_limit, too_large, internal
		),
	}
}

// RecordAction records a finished action call with its status.
func (m *Metrics) RecordAction(action, status string, duration float64) {
	m.ActionRequestsTotal.WithLabelValues(action, status).Inc()
	if status == StatusSuccess {
		m.ActionDurationSeconds.WithLabelValues(action).Observe(duration)
	}
}

// RecordMentions records which products an utterance mentioned.
func (m *Metrics) RecordMentions(products []string) {
	for _, p := range products {
		m.ProductMentionsTotal.WithLabelValues(p).Inc()
	}
	m.MentionSetSize.WithLabelValues(strconv.Itoa(len(products))).Inc()
}

// RecordTemplate records a reply rendered from the given template.
func (m *Metrics) RecordTemplate(template string) {
	m.ResponseTemplateTotal.WithLabelValues(template).Inc()
}

// RecordSlotEvent records an emitted slot update.
func (m *Metrics) RecordSlotEvent(slot string) {
	m.SlotEventsTotal.WithLabelValues(slot).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}
