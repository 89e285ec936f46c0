package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/prepaid/internal/model"
)

// maxWorkers bounds how many items are scheduled concurrently.
const maxWorkers = 8

// ItemError records which input item failed to schedule.
type ItemError struct {
	Index int // 0-based position in the input
	Name  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// GenerateAll builds one row per item, in input order. Items are independent
// so they are scheduled concurrently. Every failing item is reported; the
// returned error joins one *ItemError per failure.
func GenerateAll(ctx context.Context, items []model.PrepaidItem, opts Options) ([]Row, error) {
	rows := make([]Row, len(items))

	var (
		mu   sync.Mutex
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := Generate(item, opts)
			if err != nil {
				mu.Lock()
				errs = append(errs, &ItemError{Index: i, Name: item.Name, Err: err})
				mu.Unlock()
				return nil
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generating schedules: %w", err)
	}

	if len(errs) > 0 {
		sortItemErrors(errs)
		return nil, errors.Join(errs...)
	}
	return rows, nil
}

func sortItemErrors(errs []error) {
	index := func(err error) int {
		var ie *ItemError
		if errors.As(err, &ie) {
			return ie.Index
		}
		return -1
	}
	slices.SortFunc(errs, func(a, b error) int { return index(a) - index(b) })
}
