package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"vitaran/pkg/platform/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes      int32
	Errors         int32
	Conflicts      int32
	NotFounds      int32
	BudgetShortage int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Conflicts + r.NotFounds + r.BudgetShortage
}

// RunConcurrent executes fn in parallel goroutines and collects results,
// categorizing errors by sentinel. This helper replaces the common pattern
// of WaitGroup + atomic counters in tests.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, conflicts, notFounds, shortages atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				notFounds.Add(1)
			case errors.Is(err, sentinel.ErrInsufficientBudget):
				shortages.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:      successes.Load(),
		Errors:         errs.Load(),
		Conflicts:      conflicts.Load(),
		NotFounds:      notFounds.Load(),
		BudgetShortage: shortages.Load(),
	}
}
