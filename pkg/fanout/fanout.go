// Package fanout runs one function over many inputs concurrently and waits
// for all of them.
//
// Unlike errgroup.WithContext, a failing item never cancels its siblings:
// each item produces a result (its zero value on failure) and [Map] returns
// once every item has settled.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item concurrently and returns the results in input
// order. limit caps the number of concurrent calls; limit <= 0 starts one
// goroutine per item.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) R) []R {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			out[i] = fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// FlatMap is [Map] for functions returning slices; the results are
// concatenated in input order.
func FlatMap[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) []R) []R {
	parts := Map(ctx, items, limit, fn)
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	flat := make([]R, 0, n)
	for _, p := range parts {
		flat = append(flat, p...)
	}
	return flat
}
