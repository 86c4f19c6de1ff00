/*
Package taskgate provides a bounded-concurrency execution core for Go
applications: fair admission, bounded parallelism, retry with backoff, and
graceful shutdown for batches of independent asynchronous tasks.

Concurrency (pkg/concurrency):
  - semaphore: counting semaphore with FIFO admission
  - controller: bounded task execution with error isolation and retry
  - taskqueue: queue-shaped submission façade over a controller

Scheduling (pkg/scheduling):
  - scheduler: deferred, repeating, and cron-based submission

Observability (pkg/metrics):
  - Prometheus instrumentation for semaphores, controllers, and queues

Example usage:

	import (
		"github.com/vnykmshr/taskgate/pkg/concurrency/controller"
		"github.com/vnykmshr/taskgate/pkg/concurrency/taskqueue"
	)

	queue := taskqueue.New[string](4) // at most 4 tasks mid-execution
	defer queue.Stop()

	report, err := queue.Enqueue(ctx, "audit-home", auditHome)
	results := queue.EnqueueAll(ctx, entries) // per-entry error isolation
*/
package taskgate
