// Package metrics provides Prometheus instrumentation for the API server.
//
// All collectors are registered in a custom registry (not the global
// default) so that only this service's metrics appear on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors used by the server.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal      *prometheus.CounterVec
	FunctionRunsTotal      *prometheus.CounterVec
	FunctionRunDuration    *prometheus.HistogramVec
	OperationsEmittedTotal *prometheus.CounterVec
	WebhooksTotal          *prometheus.CounterVec
	MetafieldWritesTotal   prometheus.Counter
}

// New creates and registers all collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "status"}),

		FunctionRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_function_runs_total",
			Help: "Total number of checkout function evaluations.",
		}, []string{"variant", "outcome"}),

		FunctionRunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkout_function_run_duration_seconds",
			Help:    "Checkout function evaluation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant"}),

		OperationsEmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_operations_emitted_total",
			Help: "Total number of hide/rename operations emitted.",
		}, []string{"variant", "kind"}),

		WebhooksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_webhooks_total",
			Help: "Total number of webhook deliveries processed.",
		}, []string{"topic"}),

		MetafieldWritesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_metafield_writes_total",
			Help: "Total number of configuration metafield writes.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.FunctionRunsTotal,
		m.FunctionRunDuration,
		m.OperationsEmittedTotal,
		m.WebhooksTotal,
		m.MetafieldWritesTotal,
	)

	return m
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
