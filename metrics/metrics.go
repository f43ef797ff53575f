package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PointsAwarded counts Knowl credited to users by source
	PointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowl_points_awarded_total",
			Help: "Total number of points awarded",
		},
		[]string{"source"},
	)

	// AnalysesCreated counts recorded analyses by tier
	AnalysesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowl_analyses_total",
			Help: "Total number of analyses recorded",
		},
		[]string{"type"},
	)

	// MarketRequests counts market gateway calls by operation and result
	// (ok, fallback, miss).
	MarketRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowl_market_requests_total",
			Help: "Total number of market data requests",
		},
		[]string{"op", "result"},
	)

	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowl_chat_requests_total",
			Help: "Total number of chat completion requests",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "knowl_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
