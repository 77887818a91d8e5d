// Package metrics defines the prometheus collectors the services export
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "doomscroll"

// NewRegistry returns a registry preloaded with go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the prometheus exposition format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Rollup instruments rollup runs. A nil *Rollup is a valid no-op.
type Rollup struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	scanned     prometheus.Counter
	skipped     *prometheus.CounterVec
	buckets     prometheus.Counter
	lastSuccess prometheus.Gauge
}

// NewRollup registers the rollup collectors on reg
func NewRollup(reg prometheus.Registerer) *Rollup {
	m := &Rollup{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "runs_total",
			Help: "Rollup runs by outcome (ok, error, busy, lease_held).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "run_duration_seconds",
			Help:    "Wall time of completed rollup runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		scanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "events_scanned_total",
			Help: "Content-analysis events read from the event store.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "events_skipped_total",
			Help: "Events excluded from totals, by reason.",
		}, []string{"reason"}),
		buckets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "buckets_written_total",
			Help: "Daily buckets overwritten.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "rollup", Name: "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
	reg.MustRegister(m.runs, m.duration, m.scanned, m.skipped, m.buckets, m.lastSuccess)
	return m
}

// ObserveRun records one finished run
func (m *Rollup) ObserveRun(outcome string, d time.Duration, at time.Time) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.duration.Observe(d.Seconds())
		m.lastSuccess.Set(float64(at.Unix()))
	}
}

// Counted adds per-run tallies
func (m *Rollup) Counted(scanned, malformed, badSentiment, buckets int) {
	if m == nil {
		return
	}
	m.scanned.Add(float64(scanned))
	m.skipped.WithLabelValues("malformed_payload").Add(float64(malformed))
	m.skipped.WithLabelValues("unknown_sentiment").Add(float64(badSentiment))
	m.buckets.Add(float64(buckets))
}

// HTTP instruments request handling. A nil *HTTP is a valid no-op.
type HTTP struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewHTTP registers the http collectors on reg
func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

// Observe records one request; route should be the pattern, not the raw path
func (m *HTTP) Observe(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}
