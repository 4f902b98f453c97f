package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

func sampleSnapshot(ts time.Time) models.Snapshot {
	return models.Snapshot{
		{Match: "Arsenal vs Chelsea", HomeOdds: 2.10, DrawOdds: 3.40, AwayOdds: 3.20, Timestamp: ts},
		{Match: "Liverpool vs Man United", HomeOdds: 1.85, DrawOdds: 3.60, AwayOdds: 4.20, Timestamp: ts},
	}
}

func TestLoadPrevious_MissingSlot(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	snapshot, err := store.LoadPrevious()
	if err != nil {
		t.Fatalf("LoadPrevious on empty dir: %v", err)
	}
	if !snapshot.Empty() {
		t.Errorf("missing previous slot should yield an empty snapshot, got %d records", len(snapshot))
	}
}

func TestSaveCurrentAndRotate_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ts := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)
	want := sampleSnapshot(ts)

	if err := store.SaveCurrent(want); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	if err := store.Rotate(); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	got, err := store.LoadPrevious()
	if err != nil {
		t.Fatalf("LoadPrevious: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Match != want[i].Match {
			t.Errorf("record %d: match %q, want %q (order must survive persistence)", i, got[i].Match, want[i].Match)
		}
		if got[i].HomeOdds != want[i].HomeOdds || got[i].DrawOdds != want[i].DrawOdds || got[i].AwayOdds != want[i].AwayOdds {
			t.Errorf("record %d: odds changed through persistence: %+v != %+v", i, got[i], want[i])
		}
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("record %d: timestamp %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
	}
}

func TestRotate_WithoutCurrentSlot(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Rotate(); err == nil {
		t.Error("Rotate without a current slot should fail")
	}
}

func TestSaveCurrent_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ts := time.Now().UTC()
	if err := store.SaveCurrent(sampleSnapshot(ts)); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	if err := store.SaveCurrent(sampleSnapshot(ts.Add(time.Hour))); err != nil {
		t.Fatalf("SaveCurrent again: %v", err)
	}
	if err := store.Rotate(); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("expected exactly the two slot files, found %d entries", len(entries))
	}
}

func TestLoadPrevious_CorruptSlot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, previousSlotFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt slot: %v", err)
	}

	if _, err := store.LoadPrevious(); err == nil {
		t.Error("corrupt previous slot should return an error, not an empty snapshot")
	}
}

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("store dir was not created: %v", err)
	}
}
