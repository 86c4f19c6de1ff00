/*
Package semaphore provides a counting semaphore with fair (FIFO) admission.

The semaphore grants up to a fixed number of concurrently held permits.
Callers that cannot be granted a permit immediately are queued in arrival
order and resumed one at a time as permits are released. A released permit
is handed directly to the longest waiter rather than returned to the pool,
so a blocked caller can never be overtaken by one that started waiting
later.

Basic usage:

	sem, err := semaphore.NewSafe(3) // at most 3 concurrent holders
	if err != nil {
		log.Fatal(err)
	}

	if err := sem.Acquire(ctx); err != nil {
		return err // context canceled while waiting
	}
	defer sem.Release()
	// Do work

Non-blocking admission:

	if sem.TryAcquire() {
		defer sem.Release()
		// Do work
	} else {
		// At capacity, back off
	}

State Inspection:

	sem.Capacity()  // total permits
	sem.Available() // permits currently unclaimed
	sem.Waiting()   // callers blocked in Acquire

Invariants:

  - available + held permits == capacity at all times
  - waiters exist only while no permit is available
  - permits are granted to waiters strictly in FIFO order

Thread Safety:

All operations are safe for concurrent use. The waiter list and permit
counters are the only shared state and are mutated exclusively under an
internal mutex.
*/
package semaphore
