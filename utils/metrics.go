package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts handled requests by route pattern and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_visit_http_requests_total",
			Help: "Total HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_visit_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitRejectionsTotal counts requests denied by a named limiter.
	RateLimitRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_visit_rate_limit_rejections_total",
			Help: "Requests rejected by a rate limiter.",
		},
		[]string{"limiter"},
	)

	// BookingOutcomesTotal counts how booking journeys end.
	BookingOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_visit_booking_outcomes_total",
			Help: "Booking journey outcomes by result.",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers the service collectors on reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RateLimitRejectionsTotal,
		BookingOutcomesTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
