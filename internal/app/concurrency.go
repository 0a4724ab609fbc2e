package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Both runs a and b concurrently. The first failure cancels the other and
// both values come back zeroed.
func Both[A, B any](
	ctx context.Context,
	a func(context.Context) (A, error),
	b func(context.Context) (B, error),
) (A, B, error) {
	var (
		va A
		vb B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		va, err = a(gctx)
		return err
	})
	g.Go(func() (err error) {
		vb, err = b(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
		)

		return za, zb, fmt.Errorf("concurrent fetch: %w", err)
	}

	return va, vb, nil
}

// Outcome is the value or error of one FanOut call.
type Outcome[T any] struct {
	Value T
	Err   error
}

// FanOut calls fn n times with at most limit calls in flight and returns the
// outcomes indexed by call. Failures do not cancel siblings. Calls not yet
// started when ctx is done report ctx.Err() without running.
func FanOut[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) []Outcome[T] {
	out := make([]Outcome[T], max(n, 0))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))

	for i := range out {
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}

			out[i].Value, out[i].Err = fn(ctx, i)

			return nil
		})
	}

	_ = g.Wait()

	return out
}
