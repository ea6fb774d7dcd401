package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileLock serializes cycles against each other. Overlapping runs (a slow
// fetch outlasting the cron interval) would both compute previous-vs-current
// from a stale read and double-fire alerts, so a second cycle must not start
// while one holds the lock.
type FileLock struct {
	path string
}

// AcquireLock takes the lock file, failing if another live cycle holds it.
// A lock older than staleAfter is assumed abandoned and is broken.
func AcquireLock(path string, staleAfter time.Duration) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return &FileLock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		info, statErr := os.Stat(path)
		if statErr != nil {
			// Holder released between our open and stat; retry.
			continue
		}
		if staleAfter > 0 && time.Since(info.ModTime()) > staleAfter {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				return nil, fmt.Errorf("break stale lock: %w", rmErr)
			}
			continue
		}
		return nil, fmt.Errorf("another cycle holds the lock at %s", path)
	}
	return nil, fmt.Errorf("could not acquire lock at %s", path)
}

// Release removes the lock file.
func (l *FileLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
