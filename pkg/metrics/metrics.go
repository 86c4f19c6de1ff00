// Package metrics provides Prometheus instrumentation for taskgate components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskgate components.
type Registry struct {
	// Semaphore Metrics
	PermitsAvailable *prometheus.GaugeVec
	PermitsWaiting   *prometheus.GaugeVec

	// Controller Metrics
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksRejected         *prometheus.CounterVec
	TaskRetries           *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	TasksRunning          *prometheus.GaugeVec

	// Queue Metrics
	QueueLength *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by taskgate components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Semaphore Metrics
		PermitsAvailable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskgate",
				Subsystem: "semaphore",
				Name:      "permits_available",
				Help:      "Number of permits currently unclaimed",
			},
			[]string{"name"},
		),

		PermitsWaiting: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskgate",
				Subsystem: "semaphore",
				Name:      "waiters",
				Help:      "Number of callers blocked waiting for a permit",
			},
			[]string{"name"},
		),

		// Controller Metrics
		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "tasks_executed_total",
				Help:      "Total number of task executions attempted",
			},
			[]string{"name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions rejected after Stop",
			},
			[]string{"name"},
		),

		TaskRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "task_retries_total",
				Help:      "Total number of retry attempts after a failed execution",
			},
			[]string{"name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"name"},
		),

		TasksRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskgate",
				Subsystem: "controller",
				Name:      "tasks_running",
				Help:      "Number of tasks currently holding a permit",
			},
			[]string{"name"},
		),

		// Queue Metrics
		QueueLength: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskgate",
				Subsystem: "queue",
				Name:      "length",
				Help:      "Number of submissions waiting for admission",
			},
			[]string{"name"},
		),
	}
}
