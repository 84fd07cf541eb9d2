package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "planner"

// Metrics holds the collectors for one server instance. Each instance has
// its own registry, so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Planning
	PlansTotal      *prometheus.CounterVec
	RoomsPerFloor   prometheus.Histogram
	PlanDuration    prometheus.Histogram
	EstimatedCost   prometheus.Histogram
	ExportsTotal    *prometheus.CounterVec
	ValidationFails *prometheus.CounterVec

	// Advisor
	AdvisorCalls     *prometheus.CounterVec
	AdvisorDuration  *prometheus.HistogramVec
	AdvisorFallbacks *prometheus.CounterVec
	AdvisorCache     *prometheus.CounterVec
	BreakerState     *prometheus.GaugeVec

	startTime time.Time
}

// NewMetrics creates the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_size_bytes",
				Help:      "HTTP request size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		PlansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_total",
				Help:      "Plans produced, by kind (full, blueprint, svg, export)",
			},
			[]string{"kind"},
		),
		RoomsPerFloor: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rooms_per_floor",
				Help:      "Rooms placed on each generated floor",
				Buckets:   []float64{4, 6, 8, 10},
			},
		),
		PlanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_duration_seconds",
				Help:      "Time to produce a full plan including advisory text",
				Buckets:   []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		EstimatedCost: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "estimated_total_cost",
				Help:      "Total cost of produced estimates",
				Buckets:   prometheus.ExponentialBuckets(1e5, 4, 8),
			},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Rendered exports, by format",
			},
			[]string{"format"},
		),
		ValidationFails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Rejected requests, by endpoint",
			},
			[]string{"endpoint"},
		),

		AdvisorCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "advisor_calls_total",
				Help:      "Language model calls, by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		AdvisorDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "advisor_duration_seconds",
				Help:      "Language model call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"operation"},
		),
		AdvisorFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "advisor_fallbacks_total",
				Help:      "Offline fallbacks served, by operation and reason",
			},
			[]string{"operation", "reason"},
		),
		AdvisorCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "advisor_cache_total",
				Help:      "Advisor cache lookups, by result",
			},
			[]string{"result"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open",
			},
			[]string{"name"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Seconds since the server started",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records a served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordPlan records one produced plan and the room count of each floor.
func (m *Metrics) RecordPlan(kind string, roomsPerFloor ...int) {
	m.PlansTotal.WithLabelValues(kind).Inc()
	for _, n := range roomsPerFloor {
		m.RoomsPerFloor.Observe(float64(n))
	}
}

// RecordPlanDuration records the end-to-end time of a full plan.
func (m *Metrics) RecordPlanDuration(d time.Duration) {
	m.PlanDuration.Observe(d.Seconds())
}

// RecordEstimate records the total cost of an estimate.
func (m *Metrics) RecordEstimate(totalCost float64) {
	m.EstimatedCost.Observe(totalCost)
}

// RecordExport records a rendered export.
func (m *Metrics) RecordExport(format string) {
	m.ExportsTotal.WithLabelValues(format).Inc()
}

// RecordValidationFailure records a rejected request.
func (m *Metrics) RecordValidationFailure(endpoint string) {
	m.ValidationFails.WithLabelValues(endpoint).Inc()
}

// RecordAdvisorCall records a language model call.
func (m *Metrics) RecordAdvisorCall(operation, status string, duration time.Duration) {
	m.AdvisorCalls.WithLabelValues(operation, status).Inc()
	m.AdvisorDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAdvisorFallback records an offline answer.
func (m *Metrics) RecordAdvisorFallback(operation, reason string) {
	m.AdvisorFallbacks.WithLabelValues(operation, reason).Inc()
}

// RecordAdvisorCache records a cache hit or miss.
func (m *Metrics) RecordAdvisorCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.AdvisorCache.WithLabelValues(result).Inc()
}

// SetBreakerState publishes a breaker position.
func (m *Metrics) SetBreakerState(name string, state float64) {
	m.BreakerState.WithLabelValues(name).Set(state)
}
