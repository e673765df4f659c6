package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of work handed to the pool.
type Task func(ctx context.Context) error

// RunAll fans tasks out over at most limit workers and waits for them.
// The first failure cancels the context seen by the remaining tasks and is
// returned. limit <= 0 means one worker per task.
func RunAll(ctx context.Context, limit int, tasks ...Task) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit <= 0 {
		limit = len(tasks)
	}
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, task := range tasks {
		task := task // per-iteration copy; go directive is 1.21
		g.Go(func() error {
			return task(ctx)
		})
	}
	return g.Wait()
}
