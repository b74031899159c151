// Package concurrency runs independent jobs on a bounded set of workers.
package concurrency

import (
	"context"
	"sync"
)

// Options configure a worker pool.
type Options struct {
	// MaxWorkers caps the goroutines started; values <= 0 mean DefaultWorkers.
	MaxWorkers int
}

const DefaultWorkers = 4

func (o Options) workers(n int) int {
	w := o.MaxWorkers
	if w <= 0 {
		w = DefaultWorkers
	}
	if w > n {
		w = n
	}
	return w
}

// ForEach calls fn for every item on at most MaxWorkers goroutines and
// returns the errors fn reported. Items not yet started when ctx is done
// are skipped and ctx.Err() is added once to the result.
func ForEach[T any](ctx context.Context, items []T, opts Options, fn func(ctx context.Context, index int, item T) error) []error {
	if len(items) == 0 {
		return nil
	}

	jobs := make(chan int)
	var (
		mu      sync.Mutex
		errs    []error
		skipped bool
		wg      sync.WaitGroup
	)

	for w := 0; w < opts.workers(len(items)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(ctx, i, items[i]); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			skipped = true
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if skipped {
		errs = append(errs, ctx.Err())
	}
	return errs
}
