package worker

import (
	"context"
	"sync"
)

// Map runs `fn` over every item with at most `workers` goroutines in
// flight. Results are collected in completion order, not input order.
// A cancelled context stops new items from being picked up; items already
// in flight finish normally.
func Map[In, Out any](ctx context.Context, workers int, items []In, fn func(context.Context, In) Out) []Out {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan In)
	results := make(chan Out)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- fn(ctx, item)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case jobs <- item:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Out, 0, len(items))
	for r := range results {
		out = append(out, r)
	}
	return out
}
