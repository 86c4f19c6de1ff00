package controller

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	tgerrors "github.com/vnykmshr/taskgate/pkg/common/errors"
	"github.com/vnykmshr/taskgate/pkg/metrics"
)

// MetricsController wraps a Controller with Prometheus metrics collection.
type MetricsController[T any] struct {
	ctrl     Controller[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a controller with metrics enabled on an isolated registry.
func NewWithMetrics[T any](limit int, name string) Controller[T] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics[T](Config{Limit: limit}, name, config)
}

// NewWithConfigAndMetrics creates a controller with custom config and metrics.
func NewWithConfigAndMetrics[T any](config Config, name string, metricsConfig metrics.Config) Controller[T] {
	base, err := NewWithConfigSafe[T](config)
	if err != nil {
		panic(err)
	}

	if !metricsConfig.Enabled {
		return base
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mc := &MetricsController[T]{
		ctrl:     base,
		name:     name,
		registry: registry,
		enabled:  true,
	}
	mc.updateGauges()

	return mc
}

// updateGauges refreshes the current state gauges from a stats snapshot.
func (mc *MetricsController[T]) updateGauges() {
	if !mc.enabled {
		return
	}

	stats := mc.ctrl.Stats()
	mc.registry.PermitsAvailable.WithLabelValues(mc.name).Set(float64(stats.AvailablePermits))
	mc.registry.PermitsWaiting.WithLabelValues(mc.name).Set(float64(stats.WaitingTasks))
	mc.registry.TasksRunning.WithLabelValues(mc.name).Set(float64(stats.RunningTasks))
}

// Execute runs the task and records execution metrics.
func (mc *MetricsController[T]) Execute(ctx context.Context, id string, task Task[T]) (T, error) {
	start := time.Now()
	value, err := mc.ctrl.Execute(ctx, id, task)

	if mc.enabled {
		mc.registry.TasksExecuted.WithLabelValues(mc.name).Inc()
		mc.registry.TaskExecutionDuration.WithLabelValues(mc.name).Observe(time.Since(start).Seconds())

		switch {
		case err == nil:
			mc.registry.TasksCompleted.WithLabelValues(mc.name).Inc()
		case tgerrors.IsRejected(err):
			mc.registry.TasksRejected.WithLabelValues(mc.name).Inc()
		default:
			mc.registry.TasksFailed.WithLabelValues(mc.name).Inc()
		}

		mc.updateGauges()
	}

	return value, err
}

// ExecuteAll runs the batch through the instrumented Execute path.
func (mc *MetricsController[T]) ExecuteAll(ctx context.Context, entries []Entry[T]) []Result[T] {
	results := mc.ctrl.ExecuteAll(ctx, entries)

	if mc.enabled {
		for _, r := range results {
			mc.registry.TasksExecuted.WithLabelValues(mc.name).Inc()
			switch {
			case r.Err == nil:
				mc.registry.TasksCompleted.WithLabelValues(mc.name).Inc()
			case tgerrors.IsRejected(r.Err):
				mc.registry.TasksRejected.WithLabelValues(mc.name).Inc()
			default:
				mc.registry.TasksFailed.WithLabelValues(mc.name).Inc()
			}
		}
		mc.updateGauges()
	}

	return results
}

// ExecuteWithRetry runs the retried task and records per-attempt retries.
func (mc *MetricsController[T]) ExecuteWithRetry(ctx context.Context, id string, task Task[T], maxRetries int, baseDelay time.Duration) (T, error) {
	attempts := 0
	counted := task
	if mc.enabled {
		counted = func(ctx context.Context) (T, error) {
			attempts++
			if attempts > 1 {
				mc.registry.TaskRetries.WithLabelValues(mc.name).Inc()
			}
			return task(ctx)
		}
	}

	start := time.Now()
	value, err := mc.ctrl.ExecuteWithRetry(ctx, id, counted, maxRetries, baseDelay)

	if mc.enabled {
		mc.registry.TasksExecuted.WithLabelValues(mc.name).Inc()
		mc.registry.TaskExecutionDuration.WithLabelValues(mc.name).Observe(time.Since(start).Seconds())

		switch {
		case err == nil:
			mc.registry.TasksCompleted.WithLabelValues(mc.name).Inc()
		case tgerrors.IsRejected(err):
			mc.registry.TasksRejected.WithLabelValues(mc.name).Inc()
		default:
			mc.registry.TasksFailed.WithLabelValues(mc.name).Inc()
		}

		mc.updateGauges()
	}

	return value, err
}

// Stop delegates to the wrapped controller.
func (mc *MetricsController[T]) Stop() {
	mc.ctrl.Stop()
	mc.updateGauges()
}

// Stats returns the wrapped controller's snapshot.
func (mc *MetricsController[T]) Stats() Stats {
	stats := mc.ctrl.Stats()

	if mc.enabled {
		mc.registry.PermitsAvailable.WithLabelValues(mc.name).Set(float64(stats.AvailablePermits))
		mc.registry.PermitsWaiting.WithLabelValues(mc.name).Set(float64(stats.WaitingTasks))
		mc.registry.TasksRunning.WithLabelValues(mc.name).Set(float64(stats.RunningTasks))
	}

	return stats
}

// EnableMetrics enables metrics collection.
func (mc *MetricsController[T]) EnableMetrics(config metrics.Config) error {
	mc.enabled = config.Enabled

	if config.Registry != nil {
		mc.registry = metrics.NewRegistry(config.Registry)
	}

	if mc.enabled {
		mc.updateGauges()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mc *MetricsController[T]) DisableMetrics() {
	mc.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mc *MetricsController[T]) MetricsEnabled() bool {
	return mc.enabled
}
