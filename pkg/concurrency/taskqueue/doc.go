/*
Package taskqueue presents a queue-shaped submission API over a
concurrency controller.

The queue owns no state beyond its controller: when every permit is
claimed, additional submissions wait in the semaphore's FIFO waiter
list rather than in an explicit buffer. Stats report that waiter count
as the queue length.

Basic usage:

	queue, err := taskqueue.NewSafe[string](4)
	if err != nil {
		log.Fatal(err)
	}
	defer queue.Stop()

	report, err := queue.Enqueue(ctx, "audit-home", auditHome)

To share one concurrency ceiling with direct controller use, or to add
Prometheus instrumentation, wrap an existing controller:

	ctrl := controller.NewWithMetrics[string](4, "page_audits")
	queue := taskqueue.NewWithController(ctrl)
*/
package taskqueue
