package storage

import (
	"context"
	"fmt"

	"github.com/romangod6/sitemap-updater/internal/models"
)

// Store keeps a history of updater runs.
type Store interface {
	Initialize() error
	Close() error

	RecordRun(ctx context.Context, run *models.Run) error
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)
}

// Open returns the store for driver, or nil when history is disabled.
func Open(driver, url string) (Store, error) {
	var (
		store Store
		err   error
	)

	switch driver {
	case "":
		return nil, nil
	case "sqlite3":
		store, err = NewSQLiteStore(url)
	case "postgres":
		store, err = NewPostgresStore(url)
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s history store: %w", driver, err)
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize %s history store: %w", driver, err)
	}

	return store, nil
}
