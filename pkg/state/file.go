package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/railwatch/railwatch/pkg/model"
)

const stateVersion = 1

// stateDocument is the single durable JSON document holding all records.
type stateDocument struct {
	Version int               `json:"version"`
	Records model.NotifiedSet `json:"records"`
}

// FileStore persists the notification state as one JSON document. Commits
// write to a temporary file in the same directory and rename it over the
// document so a crash never leaves a torn state file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path, creating
// parent directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create state directory: %v", ErrPersist, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(_ context.Context) (model.NotifiedSet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// First run.
		return model.NotifiedSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read state file: %v", ErrPersist, err)
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse state file: %v", ErrPersist, err)
	}
	if doc.Records == nil {
		doc.Records = model.NotifiedSet{}
	}
	return doc.Records, nil
}

func (s *FileStore) Commit(_ context.Context, records model.NotifiedSet) error {
	doc := stateDocument{Version: stateVersion, Records: records}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp state file: %v", ErrPersist, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp state file: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp state file: %v", ErrPersist, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: chmod temp state file: %v", ErrPersist, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace state file: %v", ErrPersist, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
