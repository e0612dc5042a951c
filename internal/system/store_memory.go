package system

import (
	"context"
	"sync"
)

// InMemoryStore holds the control flag for a single process.
type InMemoryStore struct {
	mu     sync.RWMutex
	status Status
}

// NewInMemoryStore constructs a store in the frozen lifecycle-start state.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{status: StatusFrozen}
}

func (s *InMemoryStore) Get(_ context.Context) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, nil
}

func (s *InMemoryStore) Set(_ context.Context, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return nil
}
