package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts served HTTP requests by route pattern and code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awc_http_requests_total",
		Help: "HTTP requests served.",
	}, []string{"pattern", "code"})

	// RequestDuration observes request latency by route pattern.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "awc_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern"})

	// NominationsSubmitted counts accepted nominations.
	NominationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "awc_nominations_submitted_total",
		Help: "Nominations persisted as pending.",
	})

	// NominationsApproved counts pending records moved to the directory.
	NominationsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "awc_nominations_approved_total",
		Help: "Nominations approved into the public directory.",
	})

	// RateLimited counts actions refused by the rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "awc_rate_limited_total",
		Help: "Actions refused by the rate limiter.",
	}, []string{"action"})
)
