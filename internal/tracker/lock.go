package tracker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// runLock guards against overlapping cron invocations. The kernel drops the
// underlying flock when the process exits, so a crashed run never leaves a
// stale lock behind.
type runLock struct {
	fl *flock.Flock
}

// acquireRunLock takes the lock without blocking. ok is false when another
// run holds it.
func acquireRunLock(path string) (lock *runLock, ok bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !locked {
		return nil, false, nil
	}
	return &runLock{fl: fl}, true, nil
}

func (l *runLock) release() {
	if l == nil {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		slog.Warn("Failed to release run lock", "path", l.fl.Path(), "error", err)
	}
}
