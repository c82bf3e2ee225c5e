// Package metrics holds the Prometheus collectors for task API calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskui_api_requests_total",
			Help: "Task API requests by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskui_api_request_duration_seconds",
			Help:    "Task API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StaleFetches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskui_stale_fetches_total",
			Help: "Task list fetches discarded because a newer fetch superseded them",
		},
	)
)

func init() {
	prometheus.MustRegister(APIRequests)
	prometheus.MustRegister(APILatency)
	prometheus.MustRegister(StaleFetches)
}

// ObserveAPI records one finished API call.
func ObserveAPI(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	APIRequests.WithLabelValues(op, outcome).Inc()
	APILatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
