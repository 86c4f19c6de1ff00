/*
Package controller runs asynchronous tasks under a concurrency ceiling with
per-task error isolation and retry support.

A controller owns one FIFO semaphore sized to its concurrency limit. Every
submission acquires a permit (waiting fairly if none is free), runs the task,
and releases the permit on success, failure, and panic alike. Failures are
returned as values so a batch of independent tasks can be evaluated without
one failure aborting its siblings.

Basic usage:

	ctrl, err := controller.NewSafe[string](4)
	if err != nil {
		log.Fatal(err)
	}
	defer ctrl.Stop()

	title, err := ctrl.Execute(ctx, "audit-home", func(ctx context.Context) (string, error) {
		return fetchTitle(ctx, "https://example.com")
	})

Batch execution:

	results := ctrl.ExecuteAll(ctx, []controller.Entry[string]{
		{ID: "home", Task: auditHome},
		{ID: "about", Task: auditAbout},
	})
	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s: %v", r.ID, r.Err)
		}
	}

Results come back in input order; individual failures never fail the batch.

Retry with backoff:

	value, err := ctrl.ExecuteWithRetry(ctx, "flaky", task, 2, 10*time.Millisecond)

Each attempt is a full acquire/run/release cycle. Between failed attempts
the caller pauses with a doubling backoff (10ms, 20ms, ...); no pause
follows the final attempt. If every attempt fails, the returned error is a
*errors.RetryError reporting the total attempt count.

Shutdown:

Stop is one-way. Tasks already holding a permit run to completion; every
later submission is rejected with errors.ErrStopped and its task function
is never invoked.

Error Handling:

  - rejected submission: errors.ErrStopped (match with errors.IsRejected)
  - task failure: *errors.TaskError wrapping the cause
  - retry exhaustion: *errors.RetryError wrapping the last cause

Only construction-time misuse (non-positive limit via New) panics; the
NewSafe constructors return a validation error instead.
*/
package controller
