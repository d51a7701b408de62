// Package metrics provides Prometheus metrics for the earnings tracker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Manager owns the service's collectors and the registry they live on.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequests        *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	tickersSkipped  prometheus.Counter
	recordsSkipped  *prometheus.CounterVec
	recordsReturned prometheus.Counter
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace (default "earningstracker").
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithRegistry registers collectors on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = reg }
}

// NewManager creates a manager with its own registry, so default Go
// runtime metrics are not exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "earningstracker"}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total number of upstream data requests by source and outcome",
	}, []string{"source", "outcome"})

	m.upstreamRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream data request latency",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"source"})

	m.tickersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "earnings",
		Name:      "tickers_skipped_total",
		Help:      "Tickers dropped from an earnings scan because their history could not be fetched",
	})

	m.recordsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "earnings",
		Name:      "records_skipped_total",
		Help:      "Earnings history rows left out of a scan, by reason",
	}, []string{"reason"})

	m.recordsReturned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "earnings",
		Name:      "records_returned_total",
		Help:      "Earnings records returned across all scans",
	})
}

// RecordHTTPRequest records one served HTTP request.
func (m *Manager) RecordHTTPRequest(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
}

// RecordUpstream records one call to an upstream source.
func (m *Manager) RecordUpstream(source string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.upstreamRequests.WithLabelValues(source, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordTickerSkipped counts a ticker whose history fetch failed.
func (m *Manager) RecordTickerSkipped() {
	if m == nil {
		return
	}
	m.tickersSkipped.Inc()
}

// RecordRecordSkipped counts a history row dropped for reason.
func (m *Manager) RecordRecordSkipped(reason string) {
	if m == nil {
		return
	}
	m.recordsSkipped.WithLabelValues(reason).Inc()
}

// RecordRecordsReturned adds n to the returned-records counter.
func (m *Manager) RecordRecordsReturned(n int) {
	if m == nil {
		return
	}
	m.recordsReturned.Add(float64(n))
}

// Registry returns the registry the collectors are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
