package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vivario/reservation-service/internal/wizard"
)

// MemoryStore is the in-process DraftStore used in tests. Drafts are stored
// as JSON copies so callers never share memory with the store, matching the
// Redis behavior.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	s.mu.RLock()
	data, ok := s.drafts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var draft wizard.ReservationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *MemoryStore) Save(_ context.Context, draft *wizard.ReservationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[draft.SessionID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.drafts, sessionID)
	s.mu.Unlock()
	return nil
}

// MemoryCartStore is the in-process CartStore counterpart of MemoryStore.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]uint
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]uint)}
}

func (s *MemoryCartStore) Get(_ context.Context, sessionID string) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.carts[sessionID]
	out := make([]uint, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *MemoryCartStore) Add(_ context.Context, sessionID string, experienceID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.carts[sessionID] {
		if id == experienceID {
			return nil
		}
	}
	s.carts[sessionID] = append(s.carts[sessionID], experienceID)
	return nil
}

func (s *MemoryCartStore) Remove(_ context.Context, sessionID string, experienceID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.carts[sessionID]
	kept := ids[:0]
	for _, id := range ids {
		if id != experienceID {
			kept = append(kept, id)
		}
	}
	s.carts[sessionID] = kept
	return nil
}

func (s *MemoryCartStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
