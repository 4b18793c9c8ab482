// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Total number of onboarding submissions by synchronous outcome",
		},
		[]string{"outcome"},
	)

	WorkflowsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_workflows_completed_total",
			Help: "Total number of background workflows by final state",
		},
		[]string{"state", "employee_type"},
	)

	WorkflowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onboarding_workflow_duration_seconds",
			Help:    "Duration of background workflow processing in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"state"},
	)

	WorkflowsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "onboarding_workflows_active",
			Help: "Number of background workflows in flight",
		},
	)

	DownstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_downstream_calls_total",
			Help: "Calls to Talenox and the mail provider by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Call outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ObserveCall records one downstream call.
func ObserveCall(operation string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	DownstreamCalls.WithLabelValues(operation, status).Inc()
}
