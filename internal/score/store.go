// Package score persists the single high score value.
package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store loads and saves the high score.
type Store interface {
	// Load returns the stored high score. Missing or malformed data yields 0.
	Load() (int, error)
	// Save stores score.
	Save(score int) error
}

type record struct {
	HighScore int `json:"high_score"`
}

// JSONStore keeps the high score in a small JSON file.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the file. A missing, malformed or negative value is treated as 0.
func (s *JSONStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil || r.HighScore < 0 {
		return 0, nil
	}
	return r.HighScore, nil
}

// Save writes the file atomically through a temp file and rename.
func (s *JSONStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record{HighScore: score})
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}

// Memory is an in-process store, used when persistence is disabled.
type Memory struct {
	mu    sync.Mutex
	score int
}

// Load returns the last saved score.
func (m *Memory) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save records score.
func (m *Memory) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}

var (
	_ Store = (*JSONStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*Memory)(nil)
)
