package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"active", "paused", "frozen"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Status(valid), status)
	}

	for _, invalid := range []string{"", "ACTIVE", "halted", "frozen "} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestInMemoryStoreLifecycle(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	// The system starts frozen; claims must not flow until an operator
	// deliberately activates it.
	status, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusFrozen, status)

	// Any state is reachable from any state.
	transitions := []Status{StatusActive, StatusPaused, StatusFrozen, StatusActive, StatusFrozen, StatusPaused}
	for _, next := range transitions {
		require.NoError(t, store.Set(ctx, next))
		status, err = store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, next, status)
	}
}
