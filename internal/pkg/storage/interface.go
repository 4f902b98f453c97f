package storage

import (
	"context"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// SnapshotStore persists the two snapshot slots the comparison runs on.
type SnapshotStore interface {
	// LoadPrevious returns the previous-run snapshot. A missing slot is a
	// normal first run and yields an empty snapshot, not an error.
	LoadPrevious() (models.Snapshot, error)

	// SaveCurrent atomically replaces the current slot.
	SaveCurrent(snapshot models.Snapshot) error

	// Rotate atomically copies the current slot over the previous slot, so
	// the next run compares against this run's odds.
	Rotate() error
}

// HistoryStore mirrors captured snapshots into long-term storage for offline
// analysis. The pipeline never reads it back; failures here must not affect
// the snapshot slots.
type HistoryStore interface {
	// AppendSnapshot appends one row per record.
	AppendSnapshot(ctx context.Context, snapshot models.Snapshot) error

	// Close closes the underlying connection.
	Close() error
}
