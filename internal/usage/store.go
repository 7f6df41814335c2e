package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the count in a small JSON document, the local analogue of
// the browser's freeUsageCount key.
type FileStore struct {
	path string
}

type fileData struct {
	FreeUsageCount int `json:"freeUsageCount"`
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "usage.json")}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var doc fileData
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt file counts as a fresh profile, like a missing key.
		return 0, nil
	}
	return doc.FreeUsageCount, nil
}

func (s *FileStore) Save(count int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.Marshal(fileData{FreeUsageCount: count})
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemoryStore is an in-process Store. Saves counts how many writes happened.
type MemoryStore struct {
	mu    sync.Mutex
	count int
	saves int
	Err   error
}

func NewMemoryStore(count int) *MemoryStore {
	return &MemoryStore{count: count}
}

func (s *MemoryStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, nil
}

func (s *MemoryStore) Save(count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.count = count
	s.saves++
	return nil
}

func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
