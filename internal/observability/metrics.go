package observability

import (
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// APIClientRequests counts outbound API client calls by resource, operation and outcome.
	APIClientRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_api_client_requests_total",
		Help: "Total number of API client calls",
	}, []string{"resource", "operation", "outcome"})

	// APIClientLatency records outbound API client call latency.
	APIClientLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_api_client_latency_seconds",
		Help:    "API client call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "operation"})

	// ScreenTransitions counts screen lifecycle transitions by screen and phase.
	ScreenTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_screen_transitions_total",
		Help: "Total screen phase transitions",
	}, []string{"screen", "phase"})

	// ScreenFailures counts screen failures by screen and failure kind.
	ScreenFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_screen_failures_total",
		Help: "Total screen fetch, submit and delete failures",
	}, []string{"screen", "kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// ObserveAPICall records one outbound API client call.
func ObserveAPICall(resource, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	APIClientRequests.WithLabelValues(resource, operation, outcome).Inc()
	APIClientLatency.WithLabelValues(resource, operation).Observe(time.Since(start).Seconds())
}

var (
	httpMetricsMu sync.Mutex
	httpMetrics   = map[string]*fiberprometheus.FiberPrometheus{}
)

// HTTPMetrics returns the Fiber Prometheus middleware for a service. The
// collectors register with the default registry once per service name, so
// repeated calls (e.g. one server per test) share the same instance.
func HTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	httpMetricsMu.Lock()
	defer httpMetricsMu.Unlock()

	if p, ok := httpMetrics[serviceName]; ok {
		return p
	}
	p := fiberprometheus.New(serviceName)
	httpMetrics[serviceName] = p
	return p
}
