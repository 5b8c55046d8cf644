// Package runlock serializes playback across processes. The effectors are
// exclusively owned by one run at a time; a second haptiq invocation must
// not interleave its pulses with an active one.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock wraps a flock file lock guarding playback.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// New creates a run lock backed by the given lock file path.
func New(path string) *RunLock {
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryAcquire attempts to take the lock without blocking. Returns false when
// another process holds it.
func (l *RunLock) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	return acquired, nil
}

// Release releases the lock.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
