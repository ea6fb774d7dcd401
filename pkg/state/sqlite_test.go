package state_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/state"
)

func newSQLiteStore(t *testing.T, path string) *state.SQLiteStore {
	t.Helper()
	store, err := state.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_EmptyOnFirstRun(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "state.db"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStore_CommitLoadRoundtrip(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "state.db"))
	ctx := context.Background()

	want := sampleRecords()
	require.NoError(t, store.Commit(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	for key, rec := range want {
		loaded, ok := got[key]
		require.True(t, ok)
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Status.Kind, loaded.Status.Kind)
		assert.Equal(t, 7*time.Minute, loaded.Status.Delay)
		require.NotNil(t, loaded.Status.Platform)
		assert.Equal(t, "5", *loaded.Status.Platform)
	}
}

func TestSQLiteStore_CommitReplacesWholeMapping(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "state.db"))
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, sampleRecords()))
	require.NoError(t, store.Commit(ctx, model.NotifiedSet{}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "commit replaces, records absent from the mapping are gone")
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	first := newSQLiteStore(t, path)
	require.NoError(t, first.Commit(ctx, sampleRecords()))
	require.NoError(t, first.Close())

	second := newSQLiteStore(t, path)
	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
