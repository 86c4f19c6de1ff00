package semaphore

import (
	"context"
)

// Acquire blocks until a permit is granted or ctx is done.
func (s *fifoSemaphore) Acquire(ctx context.Context) error {
	// Check if context is already canceled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()

	// Fast path: a permit is free and nobody is ahead of us.
	if s.available > 0 && len(s.waiters) == 0 {
		s.available--
		s.mu.Unlock()
		return nil
	}

	// Slow path: join the back of the waiter list.
	ready := make(chan struct{})
	s.waiters = append(s.waiters, ready)
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		select {
		case <-ready:
			// A release handed us the permit while we were canceling.
			// Pass it on so it is not leaked.
			s.releaseLocked()
		default:
			s.removeWaiterLocked(ready)
		}
		s.mu.Unlock()
		return ctx.Err()
	}
}

// TryAcquire attempts to take a permit without blocking.
func (s *fifoSemaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Waiters hold priority: never overtake a blocked caller.
	if s.available > 0 && len(s.waiters) == 0 {
		s.available--
		return true
	}
	return false
}

// Release returns a permit, waking the longest waiter if any.
func (s *fifoSemaphore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

// releaseLocked hands the permit to the head waiter, or returns it to the
// pool when nobody is waiting. The available count stays unchanged on a
// handoff: the permit is transferred, never parked where a fresh acquire
// could steal it. Must be called with s.mu held.
func (s *fifoSemaphore) releaseLocked() {
	if len(s.waiters) > 0 {
		ready := s.waiters[0]
		s.waiters = s.waiters[1:]
		close(ready)
		return
	}

	if s.available >= s.capacity {
		panic("semaphore: released more permits than held")
	}
	s.available++
}

// removeWaiterLocked drops a canceled waiter from the list.
// Must be called with s.mu held.
func (s *fifoSemaphore) removeWaiterLocked(ready chan struct{}) {
	for i, w := range s.waiters {
		if w == ready {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}

// Capacity returns the total number of permits.
func (s *fifoSemaphore) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

// Available returns the number of permits currently unclaimed.
func (s *fifoSemaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Waiting returns the number of callers blocked in Acquire.
func (s *fifoSemaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}
