package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go-stockbook/internal/model"
)

// FileStore keeps the whole snapshot in a single JSON document. Saves
// write to a temp file and rename it into place, so a failure mid-write
// never corrupts the previously committed state.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (*model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return model.NewState(), nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return model.NewState(), nil
	}

	state := model.NewState()
	if err := json.Unmarshal(b, state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if state.NextProductID < 1 {
		state.NextProductID = 1
	}
	if state.NextTransactionID < 1 {
		state.NextTransactionID = 1
	}
	return state, nil
}

func (s *FileStore) Save(state *model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
