package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/railwatch/railwatch/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an SQLite database. Useful when the state
// lives on a filesystem where rename atomicity is not trusted, or when other
// tooling wants to query past alerts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates an SQLite-backed store at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", ErrPersist, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrPersist, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: set WAL mode: %v", ErrPersist, err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: run migrations: %v", ErrPersist, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (model.NotifiedSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, id, trip, status, notified_at FROM notified_records`)
	if err != nil {
		return nil, fmt.Errorf("%w: query notified records: %v", ErrPersist, err)
	}
	defer rows.Close()

	records := model.NotifiedSet{}
	for rows.Next() {
		var key, statusJSON string
		var rec model.NotifiedRecord
		if err := rows.Scan(&key, &rec.ID, &rec.Trip, &statusJSON, &rec.NotifiedAt); err != nil {
			return nil, fmt.Errorf("%w: scan notified record: %v", ErrPersist, err)
		}
		if err := json.Unmarshal([]byte(statusJSON), &rec.Status); err != nil {
			return nil, fmt.Errorf("%w: decode status for %s: %v", ErrPersist, key, err)
		}
		records[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate notified records: %v", ErrPersist, err)
	}
	return records, nil
}

// Commit replaces the whole mapping inside one transaction.
func (s *SQLiteStore) Commit(ctx context.Context, records model.NotifiedSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin commit: %v", ErrPersist, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM notified_records`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: clear notified records: %v", ErrPersist, err)
	}

	for key, rec := range records {
		statusJSON, err := json.Marshal(rec.Status)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: encode status for %s: %v", ErrPersist, key, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notified_records (key, id, trip, status, notified_at) VALUES (?, ?, ?, ?, ?)`,
			key, rec.ID, rec.Trip, string(statusJSON), rec.NotifiedAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: insert notified record %s: %v", ErrPersist, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit notified records: %v", ErrPersist, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
