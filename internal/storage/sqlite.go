package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/sitemap-updater/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS update_runs (
            id TEXT PRIMARY KEY,
            path TEXT NOT NULL,
            run_date TEXT,
            entries INTEGER NOT NULL DEFAULT 0,
            updated INTEGER NOT NULL DEFAULT 0,
            dry_run BOOLEAN NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            error TEXT,
            started_at DATETIME NOT NULL,
            finished_at DATETIME NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_update_runs_started_at ON update_runs(started_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO update_runs (id, path, run_date, entries, updated, dry_run, status, error, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		run.ID.String(),
		run.Path,
		run.Date,
		run.Entries,
		run.Updated,
		run.DryRun,
		run.Status,
		run.Error,
		run.StartedAt,
		run.FinishedAt,
	)

	return err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	query := `
        SELECT id, path, run_date, entries, updated, dry_run, status, error, started_at, finished_at
        FROM update_runs
        ORDER BY started_at DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var idStr string
		var runDate, runErr sql.NullString

		err := rows.Scan(
			&idStr,
			&run.Path,
			&runDate,
			&run.Entries,
			&run.Updated,
			&run.DryRun,
			&run.Status,
			&runErr,
			&run.StartedAt,
			&run.FinishedAt,
		)
		if err != nil {
			return nil, err
		}

		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
		}
		run.Date = runDate.String
		run.Error = runErr.String

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
