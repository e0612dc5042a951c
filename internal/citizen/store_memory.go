package citizen

import (
	"context"
	"sync"
	"time"

	"vitaran/pkg/domain"
	"vitaran/pkg/platform/sentinel"
)

// InMemoryStore keeps citizen records in memory. Insertion order is preserved
// via a side slice so List honors the registry ordering contract.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  map[domain.CitizenID]*Citizen
	ordering []domain.CitizenID
}

// NewInMemoryStore constructs an empty in-memory registry.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.CitizenID]*Citizen)}
}

func (s *InMemoryStore) Insert(_ context.Context, c *Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(c)
}

func (s *InMemoryStore) InsertBatch(_ context.Context, cs []*Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state.
	seen := make(map[domain.CitizenID]struct{}, len(cs))
	for _, c := range cs {
		if _, dup := seen[c.ID]; dup {
			return sentinel.ErrConflict
		}
		if _, exists := s.records[c.ID]; exists {
			return sentinel.ErrConflict
		}
		seen[c.ID] = struct{}{}
	}
	for _, c := range cs {
		if err := s.insertLocked(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryStore) insertLocked(c *Citizen) error {
	if _, exists := s.records[c.ID]; exists {
		return sentinel.ErrConflict
	}
	copyRecord := *c
	s.records[c.ID] = &copyRecord
	s.ordering = append(s.ordering, c.ID)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id domain.CitizenID) (*Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Citizen, 0, len(s.ordering))
	for _, id := range s.ordering {
		record, ok := s.records[id]
		if !ok {
			continue // removed by DeleteInactive
		}
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

func (s *InMemoryStore) UpdateAadhaarStatus(_ context.Context, id domain.CitizenID, status AadhaarStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	record.AadhaarStatus = status
	return nil
}

func (s *InMemoryStore) RecordClaim(_ context.Context, id domain.CitizenID, claimedAt time.Time, maxClaims int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if record.Claims >= maxClaims {
		return sentinel.ErrInvalidState
	}
	record.Claims++
	stamp := claimedAt
	record.LastClaim = &stamp
	return nil
}

func (s *InMemoryStore) DeleteInactive(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	kept := s.ordering[:0]
	for _, id := range s.ordering {
		record, ok := s.records[id]
		if !ok {
			continue
		}
		if record.AccountStatus == AccountInactive {
			delete(s.records, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.ordering = kept
	return removed, nil
}
