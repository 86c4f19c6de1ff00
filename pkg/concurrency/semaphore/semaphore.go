package semaphore

import (
	"context"
	"sync"

	"github.com/vnykmshr/taskgate/pkg/common/errors"
)

// Semaphore grants up to a fixed number of concurrently held permits.
// Callers that cannot be granted a permit immediately wait in FIFO order:
// the longest-waiting caller is always resumed first, and is never raced
// by an acquire that arrived after it.
type Semaphore interface {
	// Acquire blocks until a permit is granted or the context is done.
	// Permits are granted strictly in arrival order.
	Acquire(ctx context.Context) error

	// TryAcquire attempts to take a permit without blocking.
	// It returns true if a permit was available.
	TryAcquire() bool

	// Release returns a permit. If callers are waiting, the permit is
	// handed directly to the longest waiter instead of going back to
	// the pool. It panics if more permits are released than were acquired.
	Release()

	// Capacity returns the total number of permits.
	Capacity() int

	// Available returns the number of permits currently unclaimed.
	Available() int

	// Waiting returns the number of callers blocked in Acquire.
	Waiting() int
}

// Config holds configuration options for creating a Semaphore.
type Config struct {
	// Capacity is the total number of permits. Must be positive.
	Capacity int
}

// fifoSemaphore implements Semaphore with an explicit FIFO waiter list.
type fifoSemaphore struct {
	mu        sync.Mutex
	capacity  int
	available int
	waiters   []chan struct{}
}

// New creates a semaphore with the given capacity.
// It panics if capacity is not positive; use NewSafe to get an error instead.
func New(capacity int) Semaphore {
	s, err := NewSafe(capacity)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSafe creates a semaphore with the given capacity, returning an error
// for invalid capacities. This is the recommended constructor for
// production use.
func NewSafe(capacity int) (Semaphore, error) {
	return NewWithConfigSafe(Config{Capacity: capacity})
}

// NewWithConfigSafe creates a semaphore from a Config, returning an error
// for invalid configurations.
func NewWithConfigSafe(config Config) (Semaphore, error) {
	if config.Capacity <= 0 {
		return nil, errors.NewValidationError("semaphore", "capacity", config.Capacity, "must be positive").
			WithHint("capacity is the maximum number of concurrently held permits")
	}

	return &fifoSemaphore{
		capacity:  config.Capacity,
		available: config.Capacity,
	}, nil
}
