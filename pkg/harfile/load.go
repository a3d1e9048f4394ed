package harfile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LoadAll reads several HAR files concurrently and returns their calls
// flattened in input-path order, so generation stays deterministic no matter
// which file finishes first.
func LoadAll(ctx context.Context, paths []string, opts ...Option) ([]CapturedCall, error) {
	results := make([][]CapturedCall, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			calls, err := NewReader(path, opts...).APICalls()
			if err != nil {
				return err
			}
			results[i] = calls
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Never nil: an empty capture is a valid (empty) call list, which the
	// generators must distinguish from "no source supplied".
	all := make([]CapturedCall, 0)
	for _, calls := range results {
		all = append(all, calls...)
	}
	return all, nil
}
