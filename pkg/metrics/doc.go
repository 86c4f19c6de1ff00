// Package metrics provides Prometheus instrumentation for taskgate components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	ctrl := controller.NewWithMetrics[string](5, "page_audits")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	ctrl := controller.NewWithConfigAndMetrics[string](
//		controller.Config{Limit: 5},
//		"page_audits",
//		config,
//	)
//
// # Available Metrics
//
// Semaphore:
//
//   - taskgate_semaphore_permits_available: Permits currently unclaimed
//   - taskgate_semaphore_waiters: Callers blocked waiting for a permit
//
// Controller:
//
//   - taskgate_controller_tasks_executed_total: Task executions attempted
//   - taskgate_controller_tasks_completed_total: Tasks completed successfully
//   - taskgate_controller_tasks_failed_total: Tasks that failed
//   - taskgate_controller_tasks_rejected_total: Submissions rejected after Stop
//   - taskgate_controller_task_retries_total: Retry attempts after a failure
//   - taskgate_controller_task_duration_seconds: Task execution time
//   - taskgate_controller_tasks_running: Tasks currently holding a permit
//
// Queue:
//
//   - taskgate_queue_length: Submissions waiting for admission
//
// All metrics carry a "name" label identifying the component instance.
//
// # Performance
//
// Metrics collection is designed for minimal overhead: metrics are updated
// only when operations occur, with no background goroutines or timers.
package metrics
