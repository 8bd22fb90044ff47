// Package metrics provides Prometheus metrics for cryptodigest.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts provider calls by provider, endpoint and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cryptodigest",
			Name:      "upstream_requests_total",
			Help:      "Total number of provider requests",
		},
		[]string{"provider", "endpoint", "status"},
	)

	// UpstreamDuration measures provider call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cryptodigest",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of provider requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)

	// PipelineResultsTotal counts rendered pages by pipeline and result.
	PipelineResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cryptodigest",
			Name:      "pipeline_results_total",
			Help:      "Total number of pipeline runs by result",
		},
		[]string{"pipeline", "result"},
	)

	// ItemsRendered observes how many items each page carried.
	ItemsRendered = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cryptodigest",
			Name:      "items_rendered",
			Help:      "Distribution of items rendered per page",
			Buckets:   []float64{0, 1, 2, 5, 10, 12, 25, 50},
		},
		[]string{"pipeline"},
	)

	// MissingPricesTotal counts quotes rendered without a provider price.
	MissingPricesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cryptodigest",
			Name:      "missing_prices_total",
			Help:      "Total number of quotes whose USD price was absent",
		},
	)
)

// RecordUpstream records one provider call.
func RecordUpstream(provider, endpoint, status string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(provider, endpoint, status).Inc()
	UpstreamDuration.WithLabelValues(provider, endpoint).Observe(seconds)
}

// RecordPipeline records one pipeline run and the number of items it rendered.
func RecordPipeline(pipeline, result string, items int) {
	PipelineResultsTotal.WithLabelValues(pipeline, result).Inc()
	if result == "ok" || result == "not_found" {
		ItemsRendered.WithLabelValues(pipeline).Observe(float64(items))
	}
}

// RecordMissingPrices adds n quotes without a price.
func RecordMissingPrices(n int) {
	if n > 0 {
		MissingPricesTotal.Add(float64(n))
	}
}
