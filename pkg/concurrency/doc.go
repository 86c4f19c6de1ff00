/*
Package concurrency provides the bounded-concurrency execution core for Go applications.

This package groups three components, each depending on the one before it:

  - semaphore: counting semaphore with fair (FIFO) admission
  - controller: bounded task execution with error isolation and retry
  - taskqueue: queue-shaped submission façade over a controller

Semaphore:

The semaphore is the leaf primitive; it grants up to N concurrently held
permits and resumes blocked callers in strict arrival order:

	sem := semaphore.New(3)
	if err := sem.Acquire(ctx); err != nil {
		return err
	}
	defer sem.Release()

Controller:

The controller runs opaque asynchronous tasks under the semaphore's
admission control:

	ctrl := controller.New[string](4)
	defer ctrl.Stop()

	value, err := ctrl.Execute(ctx, "audit-home", auditHome)
	results := ctrl.ExecuteAll(ctx, entries)
	value, err = ctrl.ExecuteWithRetry(ctx, "flaky", task, 2, 10*time.Millisecond)

Task Queue:

The queue is a thin façade when a submission-shaped API is preferred; the
"queue" is realized entirely as semaphore waiters:

	queue := taskqueue.New[string](4)
	defer queue.Stop()

	value, err := queue.Enqueue(ctx, "audit-home", auditHome)

All components are safe for concurrent use and return failures as values
rather than panicking across the package boundary.
*/
package concurrency
