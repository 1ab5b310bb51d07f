package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/romangod6/sitemap-updater/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS update_runs (
            id UUID PRIMARY KEY,
            path TEXT NOT NULL,
            run_date VARCHAR(10),
            entries INTEGER NOT NULL DEFAULT 0,
            updated INTEGER NOT NULL DEFAULT 0,
            dry_run BOOLEAN NOT NULL DEFAULT FALSE,
            status VARCHAR(16) NOT NULL,
            error TEXT,
            started_at TIMESTAMP NOT NULL,
            finished_at TIMESTAMP NOT NULL
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

func (s *PostgresStore) RecordRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO update_runs (id, path, run_date, entries, updated, dry_run, status, error, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Path,
		nullIfEmpty(run.Date),
		run.Entries,
		run.Updated,
		run.DryRun,
		run.Status,
		nullIfEmpty(run.Error),
		run.StartedAt,
		run.FinishedAt,
	)

	return err
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	query := `
        SELECT id, path, run_date, entries, updated, dry_run, status, error, started_at, finished_at
        FROM update_runs
        ORDER BY started_at DESC
        LIMIT $1
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var runDate, runErr sql.NullString

		if err := rows.Scan(
			&run.ID,
			&run.Path,
			&runDate,
			&run.Entries,
			&run.Updated,
			&run.DryRun,
			&run.Status,
			&runErr,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, err
		}

		run.Date = runDate.String
		run.Error = runErr.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
