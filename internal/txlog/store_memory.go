package txlog

import (
	"context"
	"sync"
)

// InMemoryStore keeps transactions in an append-only slice.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Transaction
}

// NewInMemoryStore constructs an empty in-memory transaction log.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, t *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyRecord := *t
	s.records = append(s.records, &copyRecord)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Transaction, 0, len(s.records))
	for _, record := range s.records {
		copyRecord := *record
		out = append(out, &copyRecord)
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
