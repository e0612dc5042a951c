package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitaran/pkg/platform/sentinel"
)

func TestInMemoryStoreCounters(t *testing.T) {
	store := NewInMemoryStore(1_000_000)
	ctx := context.Background()

	remaining, err := store.Budget(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), remaining)

	require.NoError(t, store.Debit(ctx, 400_000))

	remaining, err = store.Budget(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), remaining)

	disbursed, err := store.TotalDisbursed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(400_000), disbursed)
}

func TestInMemoryStoreDebitInsufficient(t *testing.T) {
	store := NewInMemoryStore(100)
	ctx := context.Background()

	require.ErrorIs(t, store.Debit(ctx, 101), sentinel.ErrInsufficientBudget)

	// A failed debit leaves both counters untouched.
	remaining, _ := store.Budget(ctx)
	disbursed, _ := store.TotalDisbursed(ctx)
	assert.Equal(t, int64(100), remaining)
	assert.Equal(t, int64(0), disbursed)

	// Exact remaining amount is allowed.
	require.NoError(t, store.Debit(ctx, 100))
	remaining, _ = store.Budget(ctx)
	assert.Equal(t, int64(0), remaining)
}

func TestInMemoryStoreResetDoesNotTouchDisbursed(t *testing.T) {
	store := NewInMemoryStore(500)
	ctx := context.Background()

	require.NoError(t, store.Debit(ctx, 500))
	require.NoError(t, store.Reset(ctx, 2_000))

	remaining, _ := store.Budget(ctx)
	disbursed, _ := store.TotalDisbursed(ctx)
	assert.Equal(t, int64(2_000), remaining)
	assert.Equal(t, int64(500), disbursed, "reset must not rewrite disbursement history")
}

// TestInMemoryStoreConcurrentDebits verifies the invariant that the budget
// never goes negative: with 50 concurrent debits of 10 against a budget of
// 200, exactly 20 succeed.
func TestInMemoryStoreConcurrentDebits(t *testing.T) {
	store := NewInMemoryStore(200)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Debit(ctx, 10)
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, sentinel.ErrInsufficientBudget)
		}
	}
	assert.Equal(t, 20, successes)

	remaining, _ := store.Budget(ctx)
	disbursed, _ := store.TotalDisbursed(ctx)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, int64(200), disbursed)
}
