// Package batch runs a set of sub-requests concurrently while keeping the
// results aligned to the input order.
package batch

import (
	"context"
	"fmt"
	"sync"
)

// Run executes fn once per item, all concurrently, and returns the results in
// input order. Completion order never affects the merge: result i always
// belongs to items[i]. The first error encountered (by input index) is
// returned with its index.
func Run[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fn(ctx, item)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
	}

	return results, nil
}
