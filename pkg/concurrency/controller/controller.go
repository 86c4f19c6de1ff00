package controller

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	tgerrors "github.com/vnykmshr/taskgate/pkg/common/errors"
	"github.com/vnykmshr/taskgate/pkg/concurrency/semaphore"
)

// Task is an asynchronous unit of work producing a value or failing.
// The controller never inspects what a task computes; it only schedules,
// bounds, retries, and reports.
type Task[T any] func(ctx context.Context) (T, error)

// Entry pairs a task with its caller-supplied identifier. The id is used
// solely for diagnostics; duplicate ids are permitted and independent.
type Entry[T any] struct {
	ID   string
	Task Task[T]
}

// Result is the outcome of one task execution.
type Result[T any] struct {
	// ID is the identifier the task was submitted under.
	ID string

	// Value is the task's result when Err is nil.
	Value T

	// Err is the failure, if any. Rejections, task failures and retry
	// exhaustion are all returned here as values, never panicked.
	Err error
}

// Stats is a point-in-time snapshot of controller state.
type Stats struct {
	// Stopped reports whether Stop has been called.
	Stopped bool

	// AvailablePermits is the number of unclaimed execution slots.
	AvailablePermits int

	// WaitingTasks is the number of submissions blocked on admission.
	WaitingTasks int

	// RunningTasks is the number of tasks currently holding a permit.
	RunningTasks int
}

// Controller runs asynchronous tasks under a concurrency ceiling with
// per-task error isolation and optional retry.
type Controller[T any] interface {
	// Execute runs a single task once a permit is available.
	// After Stop it returns ErrStopped without invoking the task.
	Execute(ctx context.Context, id string, task Task[T]) (T, error)

	// ExecuteAll runs every entry concurrently, each independently
	// subject to the permit limit, and returns per-entry results in
	// input order. Individual failures never fail the batch.
	ExecuteAll(ctx context.Context, entries []Entry[T]) []Result[T]

	// ExecuteWithRetry attempts the task up to maxRetries+1 times,
	// pausing with exponential backoff between failed attempts.
	ExecuteWithRetry(ctx context.Context, id string, task Task[T], maxRetries int, baseDelay time.Duration) (T, error)

	// Stop rejects all future submissions. Tasks already running are
	// not interrupted; they drain and release their permits normally.
	// The transition is one-way.
	Stop()

	// Stats returns a snapshot of the controller's current state.
	Stats() Stats
}

// SleepFunc pauses for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds configuration options for creating a Controller.
type Config struct {
	// Limit is the maximum number of tasks mid-execution at once.
	// Must be positive.
	Limit int

	// Sleep is used for backoff pauses between retry attempts. If nil,
	// a timer honoring context cancellation is used. Tests inject a
	// recording fake here instead of waiting on real timers.
	Sleep SleepFunc
}

// concurrencyController implements the Controller interface.
type concurrencyController[T any] struct {
	sem   semaphore.Semaphore
	limit int
	sleep SleepFunc

	mu      sync.RWMutex
	stopped bool
}

// New creates a controller with the given concurrency limit.
// It panics if the limit is not positive; use NewSafe to get an error instead.
func New[T any](limit int) Controller[T] {
	c, err := NewSafe[T](limit)
	if err != nil {
		panic(err)
	}
	return c
}

// NewSafe creates a controller with the given concurrency limit, returning
// an error for invalid limits. This is the recommended constructor for
// production use.
func NewSafe[T any](limit int) (Controller[T], error) {
	return NewWithConfigSafe[T](Config{Limit: limit})
}

// NewWithConfigSafe creates a controller from a Config, returning an error
// for invalid configurations.
func NewWithConfigSafe[T any](config Config) (Controller[T], error) {
	sem, err := semaphore.NewSafe(config.Limit)
	if err != nil {
		return nil, tgerrors.NewValidationError("controller", "limit", config.Limit, "must be positive").
			WithHint("limit is the maximum number of concurrently executing tasks")
	}

	slp := config.Sleep
	if slp == nil {
		slp = sleepContext
	}

	return &concurrencyController[T]{
		sem:   sem,
		limit: config.Limit,
		sleep: slp,
	}, nil
}

func (c *concurrencyController[T]) Execute(ctx context.Context, id string, task Task[T]) (T, error) {
	var zero T
	if task == nil {
		return zero, tgerrors.NewValidationError("controller", "task", nil, "cannot be nil")
	}

	if c.isStopped() {
		return zero, tgerrors.ErrStopped
	}

	if err := c.sem.Acquire(ctx); err != nil {
		return zero, fmt.Errorf("cannot admit task %s: %w", id, err)
	}
	defer c.sem.Release()

	// A stop may have landed while this submission was waiting for a
	// permit; no new task may begin after Stop returns.
	if c.isStopped() {
		return zero, tgerrors.ErrStopped
	}

	value, err := runTask(ctx, task)
	if err != nil {
		return zero, &tgerrors.TaskError{ID: id, Err: err}
	}
	return value, nil
}

func (c *concurrencyController[T]) ExecuteAll(ctx context.Context, entries []Entry[T]) []Result[T] {
	results := make([]Result[T], len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry Entry[T]) {
			defer wg.Done()
			value, err := c.Execute(ctx, entry.ID, entry.Task)
			results[i] = Result[T]{ID: entry.ID, Value: value, Err: err}
		}(i, entry)
	}
	wg.Wait()

	return results
}

func (c *concurrencyController[T]) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

func (c *concurrencyController[T]) Stats() Stats {
	available := c.sem.Available()
	return Stats{
		Stopped:          c.isStopped(),
		AvailablePermits: available,
		WaitingTasks:     c.sem.Waiting(),
		RunningTasks:     c.limit - available,
	}
}

func (c *concurrencyController[T]) isStopped() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopped
}

// runTask invokes the task, converting a panic into an error so a
// misbehaving task cannot leak its permit or abort sibling tasks.
func runTask[T any](ctx context.Context, task Task[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return task(ctx)
}

// sleepContext pauses for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
