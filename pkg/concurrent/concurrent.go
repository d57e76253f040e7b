package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn for every element in its own goroutine, at most limit at a time
// (no limit when limit <= 0), and returns the results in input order. The
// first error cancels the context handed to the remaining calls.
func Map[T any, R any](ctx context.Context, in []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, value := range in {
		g.Go(func() error {
			r, err := fn(ctx, value)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Each is Map without results.
func Each[T any](ctx context.Context, in []T, limit int, fn func(context.Context, T) error) error {
	_, err := Map(ctx, in, limit, func(ctx context.Context, value T) (struct{}, error) {
		return struct{}{}, fn(ctx, value)
	})
	return err
}
