package state

import (
	"context"
	"errors"

	"github.com/railwatch/railwatch/pkg/model"
)

// ErrPersist marks failures of the backing medium. The cycle runner treats
// these as non-fatal: alerts are still delivered and persistence is retried
// on the next cycle, at the cost of a possible duplicate alert.
var ErrPersist = errors.New("notification state persistence")

// Store owns the persisted mapping of last-alerted service statuses. One
// load at the start of a cycle, one commit at the end; no concurrent access
// within a process.
type Store interface {
	// Load returns the full persisted mapping. A missing backing document is
	// a first run and returns an empty mapping, not an error.
	Load(ctx context.Context) (model.NotifiedSet, error)

	// Commit atomically replaces the persisted mapping. A crash mid-commit
	// must not leave a torn document.
	Commit(ctx context.Context, records model.NotifiedSet) error

	// Close releases resources.
	Close() error
}
