package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// StaticFetcher reads a snapshot from a local JSON file. Used for dry runs
// and for replaying captured pages without touching the bookmaker.
type StaticFetcher struct {
	path string
}

func NewStaticFetcher(path string) *StaticFetcher {
	return &StaticFetcher{path: path}
}

func (f *StaticFetcher) GetName() string {
	return "static"
}

func (f *StaticFetcher) Fetch(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read static snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse static snapshot %s: %w", f.path, err)
	}

	// Captured files often omit timestamps. Stamp them so downstream
	// consumers always have one.
	now := time.Now().UTC()
	for i := range snapshot {
		if snapshot[i].Timestamp.IsZero() {
			snapshot[i].Timestamp = now
		}
	}
	return snapshot, nil
}
