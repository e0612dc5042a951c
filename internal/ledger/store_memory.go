package ledger

import (
	"context"
	"sync"

	"vitaran/pkg/platform/sentinel"
)

// InMemoryStore keeps the two ledger counters in memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	remaining int64
	disbursed int64
}

// NewInMemoryStore constructs a ledger seeded with the given budget.
func NewInMemoryStore(initialBudget int64) *InMemoryStore {
	return &InMemoryStore{remaining: initialBudget}
}

func (s *InMemoryStore) Budget(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remaining, nil
}

func (s *InMemoryStore) TotalDisbursed(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disbursed, nil
}

func (s *InMemoryStore) Reset(_ context.Context, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = amount
	return nil
}

func (s *InMemoryStore) Debit(_ context.Context, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.remaining {
		return sentinel.ErrInsufficientBudget
	}
	s.remaining -= amount
	s.disbursed += amount
	return nil
}
