// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_recommendations_total",
			Help: "Recommendations produced, by label",
		},
		[]string{"recommendation"},
	)

	SubstitutesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "procurement_substitutes_returned",
			Help:    "Number of substitutes returned per search",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	SignalFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_fetch_fallbacks_total",
			Help: "Signal fetches that did not come from the live API, by signal and source",
		},
		[]string{"signal", "source"},
	)
)

// ObserveAnalysis records the outcome of one recommendation and substitute search.
func ObserveAnalysis(recommendation string, substitutes int) {
	Recommendations.WithLabelValues(recommendation).Inc()
	SubstitutesReturned.Observe(float64(substitutes))
}
