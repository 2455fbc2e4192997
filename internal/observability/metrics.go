// Package observability exposes Prometheus collectors for wellness scoring.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	scoresComputedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "orchestrator",
		Name:      "scores_computed_total",
		Help:      "Number of wellness scores calculated and persisted.",
	})

	scoresReusedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "orchestrator",
		Name:      "scores_reused_total",
		Help:      "Number of requests served from the score already stored for today.",
	})

	failureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "orchestrator",
		Name:      "failures_total",
		Help:      "Number of failed score requests grouped by reason.",
	}, []string{"reason"})

	readTimeoutCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "health_provider",
		Name:      "read_timeouts_total",
		Help:      "Number of health reads that timed out and were treated as absent.",
	}, []string{"kind"})

	totalScoreHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wellness",
		Subsystem: "orchestrator",
		Name:      "total_score",
		Help:      "Distribution of calculated total wellness scores.",
		Buckets:   []float64{40, 55, 70, 85, 100},
	})
)

func init() {
	prometheus.MustRegister(
		scoresComputedCounter,
		scoresReusedCounter,
		failureCounter,
		readTimeoutCounter,
		totalScoreHistogram,
	)
}

// RecordScoreComputed counts a persisted calculation and observes its total.
func RecordScoreComputed(total float64) {
	scoresComputedCounter.Inc()
	totalScoreHistogram.Observe(total)
}

func RecordScoreReused() {
	scoresReusedCounter.Inc()
}

func RecordFailure(reason string) {
	failureCounter.WithLabelValues(reason).Inc()
}

func RecordReadTimeout(kind string) {
	readTimeoutCounter.WithLabelValues(kind).Inc()
}
