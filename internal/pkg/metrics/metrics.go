package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polyproxy_requests_total",
		Help: "Total gateway requests by route and status",
	}, []string{"method", "route", "status"})

	RequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "polyproxy_request_latency_seconds",
		Help:    "Gateway request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polyproxy_upstream_calls_total",
		Help: "Outbound upstream calls by service and outcome",
	}, []string{"upstream", "outcome"})

	RateLimitRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyproxy_ratelimit_rejects_total",
		Help: "Requests rejected by the rate limiter",
	})
)
