package concurrent

import (
	"context"

	"github.com/zeusync/trajsweep/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// ForEach runs action for each element of the iterator on at most workers
// goroutines. The first error cancels the context passed to the remaining
// actions and is returned once all started goroutines have finished.
func ForEach[T any](ctx context.Context, i *sequence.Iterator[T], workers int, action func(context.Context, T) error) error {
	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return action(groupCtx, value)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ParallelMap applies mapFn to each element on at most workers goroutines,
// preserving the input order in the result.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	indices := make([]int, len(in))
	for idx := range indices {
		indices[idx] = idx
	}

	err := ForEach(ctx, sequence.From(indices), workers, func(ctx context.Context, idx int) error {
		r, err := mapFn(ctx, in[idx])
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
