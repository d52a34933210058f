package integrations

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type task func(ctx context.Context) error

// settle runs every task concurrently, at most limit at a time, and waits for
// all of them. A failing task never cancels its siblings; the returned slice
// holds each task's error at the task's index.
func settle(ctx context.Context, limit int, tasks ...task) []error {
	errs := make([]error, len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, t := range tasks {
		g.Go(func() error {
			errs[i] = t(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
