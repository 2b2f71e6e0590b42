package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slkit_api_requests_total",
			Help: "Total number of SoftLayer API calls",
		},
		[]string{"service", "method", "status"}, // status: ok, api_error, transport_error
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slkit_api_request_duration_seconds",
			Help:    "Duration of SoftLayer API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "method"},
	)
)

func observeRequest(service, method, status string, elapsed time.Duration) {
	requestTotal.WithLabelValues(service, method, status).Inc()
	requestDuration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}
