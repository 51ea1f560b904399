// Package batch splits identifier lists into bounded chunks, looks each chunk up
// and merges the partial results into a single map keyed by identifier.
package batch

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// FetchFunc looks up one chunk of ids. Ids unknown to the remote side are simply
// absent from the returned map.
type FetchFunc[T any] func(ctx context.Context, chunk []string) (map[string]T, error)

type Options struct {
	// Size is the maximum number of ids per chunk.
	Size int
	// Concurrency bounds in-flight chunks; 1 or less runs them one after another.
	Concurrency int
}

// Partition splits ids into contiguous chunks of at most size ids. A size below 1
// yields a single chunk.
func Partition(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size < 1 {
		size = len(ids)
	}
	return slices.Collect(slices.Chunk(ids, size))
}

// Fetch calls fn once per chunk and merges the results. The first failing chunk
// aborts the batch and nothing merged so far is returned.
func Fetch[T any](ctx context.Context, ids []string, opts Options, fn FetchFunc[T]) (map[string]T, error) {
	merged := make(map[string]T)
	if len(ids) == 0 {
		return merged, nil
	}

	chunks := Partition(ids, opts.Size)
	results := make([]map[string]T, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			part, err := fn(gCtx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			results[i] = part
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, part := range results {
		for id, v := range part {
			if _, seen := merged[id]; !seen {
				merged[id] = v
			}
		}
	}
	return merged, nil
}
