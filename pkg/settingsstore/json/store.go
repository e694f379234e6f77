package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Store keeps settings blobs in a single JSON file, flushed periodically by
// SaveLooper rather than on every write.
type Store struct {
	settings map[string]json.RawMessage
	file     *os.File
	lock     sync.Mutex
	dirty    bool
}

func NewStore(filename string) (*Store, error) {
	fileExists := true
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &Store{
		settings: make(map[string]json.RawMessage),
		file:     file,
		dirty:    true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *Store) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.settings)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

func (s *Store) save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.settings)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper flushes dirty state once a minute and once more on shutdown. It
// owns the file handle and closes it when the context ends.
func (s *Store) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(time.Minute):
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *Store) Get(context string) (json.RawMessage, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.settings[context], nil
}

func (s *Store) Set(context string, settings json.RawMessage) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.settings[context] = settings
	s.dirty = true
	return nil
}
