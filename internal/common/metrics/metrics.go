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

	LeadsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_dispatched_total",
			Help: "Total number of dispatch decisions by outcome",
		},
		[]string{"outcome"},
	)

	ClassificationTierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_tier_hits_total",
			Help: "Total number of classifications by matching tier",
		},
		[]string{"tier"},
	)

	UnmappedFieldLabels = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unmapped_field_labels_total",
			Help: "Total number of inbound form labels dropped as unmapped",
		},
	)

	VendorsEliminated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendors_eliminated_total",
			Help: "Total number of vendors eliminated per filter stage",
		},
		[]string{"stage"},
	)

	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "dispatch_duration_seconds",
			Help: "Duration of a full dispatch decision in seconds",
		},
	)
)
