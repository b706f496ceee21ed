package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SubmissionsTotal      *prometheus.CounterVec
	ValidationFailures    *prometheus.CounterVec
	StoreErrors           *prometheus.CounterVec
	RateLimited           *prometheus.CounterVec
	EventPublishFailures  prometheus.Counter
	HTTPRequestDuration   *prometheus.HistogramVec
	StatsSubqueryFailures *prometheus.CounterVec
}

// New creates and registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry so instances never collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aquads_form_submissions_total",
			Help: "Total number of stored form submissions",
		}, []string{"form"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aquads_form_validation_failures_total",
			Help: "Total number of submissions rejected for missing required fields",
		}, []string{"form"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aquads_store_errors_total",
			Help: "Total number of failed store operations",
		}, []string{"operation"}),
		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aquads_rate_limited_total",
			Help: "Total number of submissions rejected by the rate limiter",
		}, []string{"route"}),
		EventPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "aquads_event_publish_failures_total",
			Help: "Total number of submission events that could not be published",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aquads_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		StatsSubqueryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aquads_stats_subquery_failures_total",
			Help: "Dashboard counts that defaulted to zero because their query failed",
		}, []string{"form"}),
	}
}

// IncrementSubmissions counts one stored submission of the given form.
func (m *Metrics) IncrementSubmissions(form string) {
	m.SubmissionsTotal.WithLabelValues(form).Inc()
}

// IncrementValidationFailures counts one rejected submission.
func (m *Metrics) IncrementValidationFailures(form string) {
	m.ValidationFailures.WithLabelValues(form).Inc()
}

// IncrementStoreErrors counts one failed store operation.
func (m *Metrics) IncrementStoreErrors(operation string) {
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// IncrementRateLimited counts one request rejected by the limiter.
func (m *Metrics) IncrementRateLimited(route string) {
	m.RateLimited.WithLabelValues(route).Inc()
}

// IncrementEventPublishFailures counts one dropped submission event.
func (m *Metrics) IncrementEventPublishFailures() {
	m.EventPublishFailures.Inc()
}

// IncrementStatsSubqueryFailures counts one dashboard count that defaulted to zero.
func (m *Metrics) IncrementStatsSubqueryFailures(form string) {
	m.StatsSubqueryFailures.WithLabelValues(form).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
