// Package prefs stores user tunables in a TOML file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store is a file-backed key-value store of integers.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]int
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]int{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if err := toml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	return s, nil
}

// Int returns the value for key, or def when unset.
func (s *Store) Int(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// SetInt sets key and persists the store.
func (s *Store) SetInt(key string, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
	return s.save()
}

// Keys returns the keys that are set, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s.values); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
