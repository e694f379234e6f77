package memory

import (
	"encoding/json"
	"sync"
)

// Store keeps settings blobs for the lifetime of the process only.
type Store struct {
	mu       sync.Mutex
	settings map[string]json.RawMessage
}

func NewStore() *Store {
	return &Store{
		settings: make(map[string]json.RawMessage),
	}
}

func (s *Store) Get(context string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[context], nil
}

func (s *Store) Set(context string, settings json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[context] = settings
	return nil
}
