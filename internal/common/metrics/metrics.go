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

	CommandsInterpreted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_commands_interpreted_total",
			Help: "Total number of voice commands interpreted",
		},
		[]string{"locale", "intent", "outcome"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voice_command_duration_seconds",
			Help:    "Duration of command interpretation in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"intent"},
	)

	ControlCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_control_commands_total",
			Help: "Total number of session control commands (repeat, stop)",
		},
		[]string{"action"},
	)

	SnapshotLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "snapshot_load_duration_seconds",
			Help: "Duration of business snapshot loads in seconds",
		},
		[]string{"source"},
	)
)
