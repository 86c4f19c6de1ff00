package semaphore_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/vnykmshr/taskgate/pkg/concurrency/semaphore"
)

// Example demonstrates basic permit acquisition.
func Example() {
	sem, err := semaphore.NewSafe(2)
	if err != nil {
		panic(fmt.Sprintf("Failed to create semaphore: %v", err))
	}

	if sem.TryAcquire() {
		fmt.Println("Operation permitted")
		// Do work...
		sem.Release() // Don't forget to release!
	} else {
		fmt.Println("Operation denied - at capacity")
	}

	// Output: Operation permitted
}

// Example_bounded demonstrates bounding concurrent goroutines.
func Example_bounded() {
	sem, err := semaphore.NewSafe(3)
	if err != nil {
		panic(fmt.Sprintf("Failed to create semaphore: %v", err))
	}

	urls := []string{"/a", "/b", "/c", "/d", "/e"}
	var wg sync.WaitGroup

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()

			// Wait for a permit; at most 3 fetches run at once.
			if err := sem.Acquire(context.Background()); err != nil {
				return
			}
			defer sem.Release()

			// fetch(url)
		}(url)
	}
	wg.Wait()

	fmt.Printf("available: %d, waiting: %d\n", sem.Available(), sem.Waiting())
	// Output: available: 3, waiting: 0
}
