package stability

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Baseline is the persisted reference digest of a host. It carries the
// session that recorded it so drift reports can point back at the origin run.
type Baseline struct {
	Hash       string    `json:"hash"`
	SessionID  string    `json:"sessionId"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Store loads and saves the baseline file.
type Store struct {
	filePath string
}

// NewStore builds a Store over path, creating the parent directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("stability: baseline path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create baseline directory: %w", err)
	}
	return &Store{filePath: path}, nil
}

// Load reads the persisted baseline. Returns nil, nil on first run (file does
// not exist).
func (s *Store) Load() (*Baseline, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // first run
		}
		return nil, fmt.Errorf("read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline file: %w", err)
	}
	if b.Hash == "" {
		return nil, fmt.Errorf("baseline file %s holds no hash", s.filePath)
	}
	return &b, nil
}

// Save marshals the baseline and writes it atomically.
func (s *Store) Save(b *Baseline) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write baseline temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename baseline file: %w", err)
	}
	return nil
}

// Delete removes the baseline file. No-op if it does not exist.
func (s *Store) Delete() error {
	err := os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete baseline file: %w", err)
	}
	return nil
}
