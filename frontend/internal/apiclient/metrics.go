package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mira",
			Name:      "backend_requests_total",
			Help:      "Backend API calls by endpoint and outcome kind",
		},
		[]string{"endpoint", "kind"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mira",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mira",
			Name:      "profile_cache_lookups_total",
			Help:      "Profile list cache lookups by result",
		},
		[]string{"result"},
	)
)
