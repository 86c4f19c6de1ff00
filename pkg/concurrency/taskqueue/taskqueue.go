package taskqueue

import (
	"context"

	"github.com/vnykmshr/taskgate/pkg/concurrency/controller"
)

// Stats is a point-in-time snapshot of queue state.
type Stats struct {
	// Controller is the underlying controller's snapshot.
	Controller controller.Stats

	// QueueLength is the number of submissions waiting for admission.
	// The queue owns no buffer of its own, so this always equals the
	// controller's waiter count.
	QueueLength int
}

// Queue presents a queue-shaped submission API over a single controller.
// The queueing is entirely implicit: excess submissions wait as semaphore
// waiters, not in an explicit buffer, so nothing is lost or reordered.
type Queue[T any] interface {
	// Enqueue submits a task and blocks until it has run (or been
	// rejected). From the caller's perspective this is indistinguishable
	// from direct controller use.
	Enqueue(ctx context.Context, id string, task controller.Task[T]) (T, error)

	// EnqueueAll submits a batch, returning per-entry results in input
	// order.
	EnqueueAll(ctx context.Context, entries []controller.Entry[T]) []controller.Result[T]

	// Stop rejects all future submissions.
	Stop()

	// Stats returns a snapshot of queue and controller state.
	Stats() Stats
}

// taskQueue implements Queue by delegating to a controller.
type taskQueue[T any] struct {
	ctrl controller.Controller[T]
}

// New creates a queue with its own controller of the given concurrency limit.
// It panics if the limit is not positive; use NewSafe to get an error instead.
func New[T any](limit int) Queue[T] {
	return &taskQueue[T]{ctrl: controller.New[T](limit)}
}

// NewSafe creates a queue with its own controller of the given concurrency
// limit, returning an error for invalid limits.
func NewSafe[T any](limit int) (Queue[T], error) {
	ctrl, err := controller.NewSafe[T](limit)
	if err != nil {
		return nil, err
	}
	return &taskQueue[T]{ctrl: ctrl}, nil
}

// NewWithController creates a queue over an existing controller. Useful for
// sharing one concurrency ceiling between direct and queued submissions, or
// for wrapping an instrumented controller.
func NewWithController[T any](ctrl controller.Controller[T]) Queue[T] {
	return &taskQueue[T]{ctrl: ctrl}
}

func (q *taskQueue[T]) Enqueue(ctx context.Context, id string, task controller.Task[T]) (T, error) {
	return q.ctrl.Execute(ctx, id, task)
}

func (q *taskQueue[T]) EnqueueAll(ctx context.Context, entries []controller.Entry[T]) []controller.Result[T] {
	return q.ctrl.ExecuteAll(ctx, entries)
}

func (q *taskQueue[T]) Stop() {
	q.ctrl.Stop()
}

func (q *taskQueue[T]) Stats() Stats {
	stats := q.ctrl.Stats()
	return Stats{
		Controller:  stats,
		QueueLength: stats.WaitingTasks,
	}
}
