// Package metrics holds the Prometheus collectors for searches and sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Searches counts finished searches by algorithm and outcome.
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridastar_searches_total",
		Help: "Total number of path searches, labelled by algorithm and outcome.",
	}, []string{"algorithm", "outcome"})

	// SearchDuration is the engine time of individually timed searches.
	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridastar_search_duration_ms",
		Help:    "Engine time per search in milliseconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
	}, []string{"algorithm"})

	// ExpandedNodes is the number of cells popped per search.
	ExpandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridastar_expanded_nodes",
		Help:    "Cells popped from the frontier per search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// RejectedRequests counts requests refused before any search ran.
	RejectedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridastar_rejected_requests_total",
		Help: "Requests refused before searching, labelled by reason.",
	}, []string{"reason"})

	// ActiveSessions is the number of live step-through sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridastar_active_sessions",
		Help: "Step-through sessions currently held in memory.",
	})

	// SessionSteps counts stepper advances across all sessions.
	SessionSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridastar_session_steps_total",
		Help: "Total number of stepper advances across sessions.",
	})
)

// ObserveSearch records one finished, individually timed search.
func ObserveSearch(algorithm string, found bool, durationMs float64, expanded int) {
	CountSearch(algorithm, found, expanded)
	SearchDuration.WithLabelValues(algorithm).Observe(durationMs)
}

// CountSearch records a search whose duration was not measured on its own.
func CountSearch(algorithm string, found bool, expanded int) {
	outcome := "not_found"
	if found {
		outcome = "found"
	}
	Searches.WithLabelValues(algorithm, outcome).Inc()
	ExpandedNodes.Observe(float64(expanded))
}
