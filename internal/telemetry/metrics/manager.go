package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterCoreAPIFetches      *prometheus.CounterVec
	CounterCoreAPICacheHits    prometheus.Counter
	CounterAggregations        prometheus.Counter
	CounterPartialAggregations prometheus.Counter
	CounterStaleUpdatesDropped prometheus.Counter
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration     *prometheus.HistogramVec
	HistogramAggregationDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("nutriview", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("nutriview", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterCoreAPIFetches := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "core_api_fetches",
		Help:      "The total number of core API fetches, per resource and outcome",
	}, []string{"resource", "outcome"})
	counterCoreAPICacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "core_api_cache_hits",
		Help:      "The total number of core API responses served from the local cache",
	})
	counterAggregations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "aggregations",
		Help:      "The total number of dashboard aggregations performed",
	})
	counterPartialAggregations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "partial_aggregations",
		Help:      "The number of aggregations completed with one or more failed fetches",
	})
	counterStaleUpdatesDropped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stale_updates_dropped",
		Help:      "The number of fetch results dropped for belonging to another subject",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
	histogramAggregationDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "aggregation_duration_seconds",
		Help:      "Dashboard aggregation duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterCoreAPIFetches:      counterCoreAPIFetches,
		CounterCoreAPICacheHits:    counterCoreAPICacheHits,
		CounterAggregations:        counterAggregations,
		CounterPartialAggregations: counterPartialAggregations,
		CounterStaleUpdatesDropped: counterStaleUpdatesDropped,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,

		GaugeRequests:   gaugeRequests,
		GaugeLifeSignal: gaugeLifeSignal,

		HistogramRequestDuration:     histogramRequestDuration,
		HistogramAggregationDuration: histogramAggregationDuration,
	}
}
