package testutil

import (
	"context"
	"sync"
	"time"
)

// MockSleeper records requested backoff pauses instead of sleeping, so
// retry schedules can be asserted without real timers.
type MockSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
	err    error
}

// NewMockSleeper creates a MockSleeper that returns immediately from every sleep.
func NewMockSleeper() *MockSleeper {
	return &MockSleeper{}
}

// Sleep records the requested delay and returns the configured error, if any.
func (s *MockSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return s.err
}

// Delays returns a copy of all delays requested so far.
func (s *MockSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}

// FailWith makes subsequent Sleep calls return err, simulating cancellation
// during a backoff pause.
func (s *MockSleeper) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
