// Package store persists crop results on disk as JSON.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/frudas24/zoomkit/internal/crop"
)

// Entry is one saved crop result.
type Entry struct {
	Profile string      `json:"profile,omitempty"`
	Result  crop.Result `json:"result"`
}

// Data is the on-disk layout keyed by editor id.
type Data map[string]Entry

// Load reads saved crops from disk. Missing files return empty data.
func Load(path string) (Data, error) {
	d := Data{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, err
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, err
	}
	return d, nil
}

// Save writes saved crops to disk, creating parent directories as needed.
func Save(path string, d Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Store is a file-backed crop store safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	data Data
}

// Open loads the store at path.
func Open(path string) (*Store, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, data: d}, nil
}

// Put records e under id and flushes the file.
func (s *Store) Put(id string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = e
	return Save(s.path, s.data)
}

// Get returns the entry saved under id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[id]
	return e, ok
}

// IDs returns the saved ids in order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadResult reads a single crop.Result JSON file, as written by the crop endpoint.
func LoadResult(path string) (crop.Result, error) {
	var r crop.Result
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, err
	}
	return r, nil
}
