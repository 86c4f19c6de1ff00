package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/taskgate/internal/testutil"
	tgerrors "github.com/vnykmshr/taskgate/pkg/common/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{"valid limit", 4, false},
		{"limit one", 1, false},
		{"zero limit", 0, true},
		{"negative limit", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, err := NewSafe[int](tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for invalid limit")
				}
				if ctrl != nil {
					t.Error("expected nil controller on error")
				}
				if !errors.Is(err, tgerrors.ErrInvalidConfiguration) {
					t.Error("error should wrap ErrInvalidConfiguration")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stats := ctrl.Stats()
			testutil.AssertEqual(t, stats.Stopped, false)
			testutil.AssertEqual(t, stats.AvailablePermits, tt.limit)
			testutil.AssertEqual(t, stats.WaitingTasks, 0)
			testutil.AssertEqual(t, stats.RunningTasks, 0)
		})
	}
}

func TestNewPanicsOnInvalidLimit(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for non-positive limit")
		}
	}()
	New[int](-3)
}

func TestExecute(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](2)

	value, err := ctrl.Execute(ctx, "answer", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, 42)
}

func TestExecuteTaskFailure(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](2)
	cause := errors.New("boom")

	_, err := ctrl.Execute(ctx, "broken", func(ctx context.Context) (int, error) {
		return 0, cause
	})
	testutil.AssertError(t, err)

	var terr *tgerrors.TaskError
	if !errors.As(err, &terr) {
		t.Fatalf("error %v should be a TaskError", err)
	}
	testutil.AssertEqual(t, terr.ID, "broken")
	if !errors.Is(err, cause) {
		t.Error("task error should wrap its cause")
	}

	// The failed task must not leak its permit.
	testutil.AssertEqual(t, ctrl.Stats().AvailablePermits, 2)
}

func TestExecuteNilTask(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](1)
	_, err := ctrl.Execute(ctx, "nil", nil)
	if !errors.Is(err, tgerrors.ErrInvalidConfiguration) {
		t.Errorf("nil task error = %v, want validation error", err)
	}
}

func TestExecutePanicRecovery(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](1)

	_, err := ctrl.Execute(ctx, "panicky", func(ctx context.Context) (int, error) {
		panic("kaboom")
	})
	testutil.AssertError(t, err)

	var terr *tgerrors.TaskError
	if !errors.As(err, &terr) {
		t.Fatalf("panic should surface as a TaskError, got %v", err)
	}

	// Permit released despite the panic.
	testutil.AssertEqual(t, ctrl.Stats().AvailablePermits, 1)

	// The controller is still usable.
	value, err := ctrl.Execute(ctx, "after", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, 7)
}

// The controller must never allow more than its limit mid-execution,
// regardless of submission burst size.
func TestConcurrencyCeiling(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	const limit = 3
	ctrl := New[struct{}](limit)

	var active, peak int32
	entries := make([]Entry[struct{}], 40)
	for i := range entries {
		entries[i] = Entry[struct{}]{
			ID: "burst",
			Task: func(ctx context.Context) (struct{}, error) {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return struct{}{}, nil
			},
		}
	}

	results := ctrl.ExecuteAll(ctx, entries)
	for _, r := range results {
		testutil.AssertNoError(t, r.Err)
	}

	if got := atomic.LoadInt32(&peak); got > limit {
		t.Errorf("observed %d tasks mid-execution, limit is %d", got, limit)
	}
}

func TestExecuteAllOrderAndIsolation(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](2)

	results := ctrl.ExecuteAll(ctx, []Entry[int]{
		{ID: "a", Task: func(ctx context.Context) (int, error) { return 1, nil }},
		{ID: "b", Task: func(ctx context.Context) (int, error) { return 0, errors.New("x") }},
		{ID: "c", Task: func(ctx context.Context) (int, error) { return 3, nil }},
	})

	testutil.AssertEqual(t, len(results), 3)

	testutil.AssertEqual(t, results[0].ID, "a")
	testutil.AssertNoError(t, results[0].Err)
	testutil.AssertEqual(t, results[0].Value, 1)

	testutil.AssertEqual(t, results[1].ID, "b")
	testutil.AssertError(t, results[1].Err)
	var terr *tgerrors.TaskError
	if !errors.As(results[1].Err, &terr) {
		t.Fatalf("entry b should fail with a TaskError, got %v", results[1].Err)
	}
	testutil.AssertEqual(t, terr.ID, "b")

	testutil.AssertEqual(t, results[2].ID, "c")
	testutil.AssertNoError(t, results[2].Err)
	testutil.AssertEqual(t, results[2].Value, 3)
}

func TestExecuteAllEmpty(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](1)
	results := ctrl.ExecuteAll(ctx, nil)
	testutil.AssertEqual(t, len(results), 0)
}

func TestStopRejectsSubmissions(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[int](2)
	ctrl.Stop()

	var invocations int32
	for i := 0; i < 3; i++ {
		_, err := ctrl.Execute(ctx, "late", func(ctx context.Context) (int, error) {
			atomic.AddInt32(&invocations, 1)
			return 0, nil
		})
		if !errors.Is(err, tgerrors.ErrStopped) {
			t.Errorf("Execute after Stop = %v, want ErrStopped", err)
		}
		if !tgerrors.IsRejected(err) {
			t.Error("post-stop error should classify as a rejection")
		}
	}

	testutil.AssertEqual(t, atomic.LoadInt32(&invocations), int32(0))
	testutil.AssertEqual(t, ctrl.Stats().Stopped, true)
}

func TestStopDoesNotInterruptRunningTasks(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ctrl := New[string](1)

	started := make(chan struct{})
	finish := make(chan struct{})
	done := make(chan struct{})

	var value string
	var err error
	go func() {
		defer close(done)
		value, err = ctrl.Execute(ctx, "long", func(ctx context.Context) (string, error) {
			close(started)
			<-finish
			return "done", nil
		})
	}()

	<-started
	ctrl.Stop()

	// Still running, still holding its permit.
	stats := ctrl.Stats()
	testutil.AssertEqual(t, stats.Stopped, true)
	testutil.AssertEqual(t, stats.RunningTasks, 1)

	close(finish)
	<-done

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, "done")
	testutil.AssertEqual(t, ctrl.Stats().AvailablePermits, 1)
}

func TestStopIsMonotonic(t *testing.T) {
	ctrl := New[int](1)
	ctrl.Stop()
	ctrl.Stop() // second call is a no-op
	testutil.AssertEqual(t, ctrl.Stats().Stopped, true)
}

func TestStats(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	const limit = 2
	ctrl := New[struct{}](limit)

	finish := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ctrl.Execute(ctx, "hold", func(ctx context.Context) (struct{}, error) {
				<-finish
				return struct{}{}, nil
			})
		}()
	}

	testutil.Eventually(t, time.Second, func() bool {
		return ctrl.Stats().RunningTasks == limit
	})

	stats := ctrl.Stats()
	testutil.AssertEqual(t, stats.AvailablePermits, 0)
	testutil.AssertEqual(t, stats.RunningTasks, limit)

	// A third submission becomes a waiter.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ctrl.Execute(ctx, "queued", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
	}()
	testutil.Eventually(t, time.Second, func() bool {
		return ctrl.Stats().WaitingTasks == 1
	})

	close(finish)
	wg.Wait()

	stats = ctrl.Stats()
	testutil.AssertEqual(t, stats.AvailablePermits, limit)
	testutil.AssertEqual(t, stats.WaitingTasks, 0)
	testutil.AssertEqual(t, stats.RunningTasks, 0)
}

func TestExecuteContextCanceledWhileWaiting(t *testing.T) {
	bg, stop := testutil.WithTimeout(t)
	defer stop()

	ctrl := New[int](1)

	finish := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ctrl.Execute(bg, "hold", func(ctx context.Context) (int, error) {
			<-finish
			return 0, nil
		})
	}()
	testutil.Eventually(t, time.Second, func() bool {
		return ctrl.Stats().RunningTasks == 1
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	var invoked int32
	go func() {
		_, err := ctrl.Execute(ctx, "waiter", func(ctx context.Context) (int, error) {
			atomic.AddInt32(&invoked, 1)
			return 0, nil
		})
		errCh <- err
	}()
	testutil.Eventually(t, time.Second, func() bool {
		return ctrl.Stats().WaitingTasks == 1
	})

	cancel()
	err := <-errCh
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute = %v, want context.Canceled", err)
	}
	testutil.AssertEqual(t, atomic.LoadInt32(&invoked), int32(0))

	close(finish)
	<-done
	testutil.AssertEqual(t, ctrl.Stats().AvailablePermits, 1)
}
