package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oddswatch/oddswatch/internal/fetch"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
	"github.com/oddswatch/oddswatch/internal/pkg/storage"
)

// RunStatus tells how a pipeline pass ended.
type RunStatus int

const (
	// StatusAlerted means changes were found and alert delivery was attempted.
	StatusAlerted RunStatus = iota
	// StatusNoChanges means snapshots were compared and nothing crossed the threshold.
	StatusNoChanges
	// StatusFirstRun means there was no previous snapshot to compare against.
	StatusFirstRun
	// StatusNothingToDo means the fetch produced no odds and the stored slots were left untouched.
	StatusNothingToDo
	// StatusLocked means another run held the lock and this one backed off.
	StatusLocked
)

func (s RunStatus) String() string {
	switch s {
	case StatusAlerted:
		return "alerted"
	case StatusNoChanges:
		return "no_changes"
	case StatusFirstRun:
		return "first_run"
	case StatusNothingToDo:
		return "nothing_to_do"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Reporter writes the tabular odds artifact for one run and returns its path.
type Reporter interface {
	Write(current, previous models.Snapshot, changes []models.ChangeEntry, now time.Time) (string, error)
}

// RunResult summarizes one pipeline pass.
type RunResult struct {
	RunID         string
	Status        RunStatus
	Fetched       int
	Changed       int
	ReportPath    string
	Notifications []SendResult
}

// Deps wires the tracker's collaborators. History and Reporter are optional;
// Now defaults to time.Now.
type Deps struct {
	Store        storage.SnapshotStore
	History      storage.HistoryStore
	Fetcher      fetch.Fetcher
	Notifiers    []Notifier
	Reporter     Reporter
	ThresholdPct float64
	LockPath     string
	Now          func() time.Time
}

// Tracker runs one fetch, compare and alert pass over the stored snapshot
// slots. While the run lock is held the slot files have no other writers.
type Tracker struct {
	store        storage.SnapshotStore
	history      storage.HistoryStore
	fetcher      fetch.Fetcher
	notifiers    []Notifier
	reporter     Reporter
	thresholdPct float64
	lockPath     string
	now          func() time.Time
}

func New(deps Deps) *Tracker {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		store:        deps.Store,
		history:      deps.History,
		fetcher:      deps.Fetcher,
		notifiers:    deps.Notifiers,
		reporter:     deps.Reporter,
		thresholdPct: deps.ThresholdPct,
		lockPath:     deps.LockPath,
		now:          now,
	}
}

// Run executes one pass. Only snapshot persistence failures are returned as
// errors; a failed fetch, a failed alert delivery or a failed report leave
// the pipeline in a consistent state and are handled inside the pass.
func (t *Tracker) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{RunID: uuid.NewString()}
	logger := slog.With("run_id", result.RunID)
	start := t.now()

	if t.lockPath != "" {
		lock, ok, err := acquireRunLock(t.lockPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Warn("Another run holds the lock, backing off", "lock", t.lockPath)
			result.Status = StatusLocked
			return result, nil
		}
		defer lock.release()
	}

	previous, err := t.store.LoadPrevious()
	if err != nil {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}
	logger.Info("Previous snapshot loaded", "records", len(previous))

	current, err := t.fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("Fetch failed, keeping stored snapshots", "source", t.fetcher.GetName(), "error", err)
		result.Status = StatusNothingToDo
		return result, nil
	}
	if current.Empty() {
		logger.Warn("Fetch returned no odds, keeping stored snapshots", "source", t.fetcher.GetName())
		result.Status = StatusNothingToDo
		return result, nil
	}
	result.Fetched = len(current)
	logger.Info("Odds fetched", "source", t.fetcher.GetName(), "records", len(current))

	if err := t.store.SaveCurrent(current); err != nil {
		return nil, fmt.Errorf("save current snapshot: %w", err)
	}
	if err := t.store.Rotate(); err != nil {
		return nil, fmt.Errorf("rotate snapshots: %w", err)
	}

	if t.history != nil {
		if err := t.history.AppendSnapshot(ctx, current); err != nil {
			logger.Warn("History append failed", "error", err)
		}
	}

	now := t.now()

	// The comparison uses the previous snapshot loaded before the rotation,
	// so the rotated slot never shadows what this run actually diffed.
	var changes []models.ChangeEntry
	switch {
	case previous.Empty():
		logger.Info("No previous snapshot, comparison skipped")
		result.Status = StatusFirstRun
	default:
		changes = ComputeChanges(current, previous, t.thresholdPct)
		result.Changed = len(changes)
		if len(changes) == 0 {
			result.Status = StatusNoChanges
		} else {
			result.Status = StatusAlerted
			logger.Info("Significant changes found", "matches", len(changes), "threshold_percent", t.thresholdPct)
		}
	}

	if t.reporter != nil {
		path, err := t.reporter.Write(current, previous, changes, now)
		if err != nil {
			logger.Warn("Report write failed", "error", err)
		} else {
			result.ReportPath = path
			logger.Info("Report written", "path", path)
		}
	}

	if len(changes) > 0 {
		result.Notifications = Dispatch(ctx, t.notifiers, changes, now)
	}

	logger.Info("Run finished",
		"status", result.Status.String(),
		"fetched", result.Fetched,
		"changed", result.Changed,
		"notifications", SummarizeResults(result.Notifications),
		"duration", t.now().Sub(start))
	return result, nil
}
