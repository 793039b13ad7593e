package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
)

const (
	metricsNamespace = "aoc"
	metricsSubsystem = "leaderboard"
)

// Metrics records leaderboard pipeline counters. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	cacheLookups     *prometheus.CounterVec
	cacheErrors      *prometheus.CounterVec
	computeDuration  *prometheus.HistogramVec
	enrichmentDrops  *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_lookups_total",
			Help:      "Leaderboard cache lookups by variant and result (hit, miss).",
		}, []string{"variant", "result"}),
		cacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_errors_total",
			Help:      "Cache store or payload failures by operation.",
		}, []string{"operation"}),
		computeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "compute_duration_seconds",
			Help:      "Time spent rebuilding a leaderboard after a cache miss.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"variant"}),
		enrichmentDrops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "enrichment_drops_total",
			Help:      "Participants dropped because a profile or repository lookup failed.",
		}, []string{"variant", "source"}),
		upstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "upstream_failures_total",
			Help:      "Failed calls to upstream APIs.",
		}, []string{"upstream"}),
		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "circuit_breaker_open",
			Help:      "1 while the named upstream circuit breaker is open or half open.",
		}, []string{"upstream"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheHit(variant string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(variant, "hit").Inc()
}

func (m *Metrics) CacheMiss(variant string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(variant, "miss").Inc()
}

func (m *Metrics) CacheError(operation string) {
	if m == nil {
		return
	}
	m.cacheErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveCompute(variant string, d time.Duration) {
	if m == nil {
		return
	}
	m.computeDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func (m *Metrics) EnrichmentDropped(variant, source string) {
	if m == nil {
		return
	}
	m.enrichmentDrops.WithLabelValues(variant, source).Inc()
}

func (m *Metrics) UpstreamFailure(upstream string) {
	if m == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(upstream).Inc()
}

// BreakerListener exports breaker transitions; pass it to resilience.BreakerFor.
func (m *Metrics) BreakerListener() resilience.StateListener {
	if m == nil {
		return nil
	}
	return func(name string, _, to resilience.CircuitState) {
		value := 0.0
		if to != resilience.CircuitStateClosed {
			value = 1
		}
		m.breakerState.WithLabelValues(name).Set(value)
	}
}
