package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/romangod6/sitemap-updater/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDisabled(t *testing.T) {
	store, err := storage.Open("", "")
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := storage.Open("mysql", "whatever")
	require.Error(t, err)
}

func TestSQLiteStoreRecordsAndListsRuns(t *testing.T) {
	store, err := storage.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	first := models.NewRun("/srv/site/sitemap.xml")
	first.StartedAt = base
	first.Finish(models.UpdateSummary{Path: "/srv/site/sitemap.xml", Date: "2025-05-01", Entries: 3, Updated: 2})
	first.FinishedAt = base.Add(time.Second)

	second := models.NewRun("/srv/site/missing.xml")
	second.StartedAt = base.Add(time.Minute)
	second.Fail(errors.New("sitemap file not found"))
	second.FinishedAt = base.Add(time.Minute + time.Second)

	require.NoError(t, store.RecordRun(ctx, first))
	require.NoError(t, store.RecordRun(ctx, second))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, models.RunStatusFailed, runs[0].Status)
	assert.Equal(t, "sitemap file not found", runs[0].Error)
	assert.Empty(t, runs[0].Date)

	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, models.RunStatusSuccess, runs[1].Status)
	assert.Equal(t, "2025-05-01", runs[1].Date)
	assert.Equal(t, 3, runs[1].Entries)
	assert.Equal(t, 2, runs[1].Updated)
	assert.True(t, runs[1].StartedAt.Equal(base))

	limited, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestSQLiteStoreRejectsDuplicateRunID(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize())

	run := models.NewRun("sitemap.xml")
	run.Finish(models.UpdateSummary{Path: "sitemap.xml", Date: "2025-05-01"})

	ctx := context.Background()
	require.NoError(t, store.RecordRun(ctx, run))
	require.Error(t, store.RecordRun(ctx, run))
}
