package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

const (
	currentSlotFile  = "odds_history.json"
	previousSlotFile = "previous_odds.json"
)

// Ensure FileStore implements SnapshotStore
var _ SnapshotStore = (*FileStore)(nil)

// FileStore keeps the current and previous snapshots as two JSON array files
// in a data directory. Each slot is replaced through a temp file renamed into
// place, so a crash mid-write never leaves a half-written slot behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// CurrentPath returns the current slot path. Used in logs.
func (s *FileStore) CurrentPath() string {
	return filepath.Join(s.dir, currentSlotFile)
}

// PreviousPath returns the previous slot path. Used in logs.
func (s *FileStore) PreviousPath() string {
	return filepath.Join(s.dir, previousSlotFile)
}

func (s *FileStore) LoadPrevious() (models.Snapshot, error) {
	data, err := os.ReadFile(s.PreviousPath())
	if errors.Is(err, fs.ErrNotExist) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read previous snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse previous snapshot %s: %w", s.PreviousPath(), err)
	}
	return snapshot, nil
}

func (s *FileStore) SaveCurrent(snapshot models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.writeSlot(currentSlotFile, data); err != nil {
		return fmt.Errorf("save current snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Rotate() error {
	data, err := os.ReadFile(s.CurrentPath())
	if err != nil {
		return fmt.Errorf("read current snapshot for rotation: %w", err)
	}
	if err := s.writeSlot(previousSlotFile, data); err != nil {
		return fmt.Errorf("rotate snapshot: %w", err)
	}
	return nil
}

// writeSlot replaces one slot file atomically: write a temp file in the same
// directory, then rename it over the slot.
func (s *FileStore) writeSlot(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
