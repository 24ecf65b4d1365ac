package store

import (
	"sync"

	"go-stockbook/internal/model"
)

// MemoryStore keeps the snapshot in memory. Used for tests and for
// ephemeral runs where nothing should touch disk.
type MemoryStore struct {
	mu    sync.Mutex
	state *model.State
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return model.NewState(), nil
	}
	return s.state.Clone(), nil
}

func (s *MemoryStore) Save(state *model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}
