// Package metrics exposes process-wide Prometheus collectors for the scoring
// engine. Collectors register on the default registry; surfacing them over
// HTTP is left to the embedding application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoringsCompleted counts finished scoring requests by analysis path.
	ScoringsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumeroast_scorings_completed_total",
			Help: "Total number of completed scoring requests by methodology",
		},
		[]string{"methodology"},
	)

	// EvaluatorFailures counts model evaluations dropped from consensus.
	EvaluatorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumeroast_evaluator_failures_total",
			Help: "Total number of failed model evaluations by backend and reason",
		},
		[]string{"backend", "reason"},
	)

	// EvaluatorLatency observes wall-clock duration of model evaluations.
	EvaluatorLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resumeroast_evaluator_latency_seconds",
			Help:    "Latency of model evaluations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// EvaluatorTokens counts tokens reported by the model backends.
	EvaluatorTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumeroast_evaluator_tokens_total",
			Help: "Total number of tokens consumed by model evaluations",
		},
		[]string{"backend", "kind"},
	)
)
