package taskqueue_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/taskgate/pkg/concurrency/controller"
	"github.com/vnykmshr/taskgate/pkg/concurrency/taskqueue"
)

// Example demonstrates queueing one unit of work per independent page.
func Example() {
	queue, err := taskqueue.NewSafe[string](2)
	if err != nil {
		panic(fmt.Sprintf("Failed to create queue: %v", err))
	}
	defer queue.Stop()

	results := queue.EnqueueAll(context.Background(), []controller.Entry[string]{
		{ID: "home", Task: func(ctx context.Context) (string, error) { return "2 issues", nil }},
		{ID: "about", Task: func(ctx context.Context) (string, error) { return "clean", nil }},
	})

	for _, r := range results {
		fmt.Printf("%s: %s\n", r.ID, r.Value)
	}

	// Output:
	// home: 2 issues
	// about: clean
}
