package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists key-value pairs as a single JSON object on disk.
// Writes go through a temp file and rename so a crash mid-write cannot
// leave a truncated store behind.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
	loaded bool
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path. The file and its
// parent directory are created lazily on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the backing file once. A missing file is an empty store.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.values = make(map[string]string)
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse store file %s: %w", s.path, err)
	}

	s.values = values
	s.loaded = true
	return nil
}

// Get returns the value for key, or ok=false when the key is absent.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", false, err
	}

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores key=value and persists the whole map to disk.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	s.values[key] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
