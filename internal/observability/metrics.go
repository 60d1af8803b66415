// Package observability defines the Prometheus metrics the service exports.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	upstreamLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_latency_seconds",
			Help:    "Latency of upstream calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"upstream"},
	)

	layerSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layer_submissions_total",
			Help: "Layer submissions by format and outcome.",
		},
		[]string{"format", "outcome"},
	)

	assetCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_cache_results_total",
			Help: "Asset metadata cache results by tier and outcome.",
		},
		[]string{"tier", "outcome"},
	)

	sceneEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_events_total",
			Help: "Scene change events by outcome.",
		},
		[]string{"outcome"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)
)

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ObserveUpstreamLatency(upstream string, durationSeconds float64) {
	upstreamLatencySeconds.WithLabelValues(upstream).Observe(durationSeconds)
}

func IncSubmission(format, outcome string) {
	layerSubmissionsTotal.WithLabelValues(format, outcome).Inc()
}

func IncAssetCache(tier, outcome string) {
	assetCacheResults.WithLabelValues(tier, outcome).Inc()
}

func IncSceneEvent(outcome string) {
	sceneEventsTotal.WithLabelValues(outcome).Inc()
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}
