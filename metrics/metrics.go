// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analysis passes by outcome.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beyondseo",
		Name:      "analyses_total",
		Help:      "Completed analysis passes by outcome (ok, error).",
	}, []string{"outcome"})

	// ThrottledTotal counts analysis requests rejected by the cooldown
	// window.
	ThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "beyondseo",
		Name:      "throttled_requests_total",
		Help:      "Analysis requests rejected because the post was analyzed recently.",
	})

	// AnalysisDuration observes full-pass duration in seconds.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "beyondseo",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of one full analysis pass.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	// AnalysisScore observes the overall score distribution across passes.
	AnalysisScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "beyondseo",
		Name:      "analysis_score",
		Help:      "Overall score of completed analysis passes.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
)

// ObserveAnalysis records one completed pass.
func ObserveAnalysis(duration time.Duration, score float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	AnalysesTotal.WithLabelValues(outcome).Inc()
	AnalysisDuration.Observe(duration.Seconds())
	if err == nil {
		AnalysisScore.Observe(score)
	}
}
