package kvstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore é usado em testes e quando SYNC_STATE_BACKEND=memory
type MemoryStore struct {
	mu    sync.RWMutex
	state map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: make(map[string]time.Time)}
}

func (s *MemoryStore) GetLastSync(_ context.Context, accountID string) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.state[accountID]
	if !ok {
		return nil, nil
	}
	return &at, nil
}

func (s *MemoryStore) SetLastSync(_ context.Context, accountID string, at time.Time) error {
	s.mu.Lock()
	s.state[accountID] = at
	s.mu.Unlock()
	return nil
}
