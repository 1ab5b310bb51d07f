package models

import (
	"time"

	"github.com/google/uuid"
)

// NewRun creates a new run record with generated UUID and start timestamp
func NewRun(path string) *Run {
	return &Run{
		ID:        uuid.New(),
		Path:      path,
		StartedAt: time.Now(),
	}
}

// Finish stamps the run with the summary of a successful update
func (r *Run) Finish(summary UpdateSummary) {
	r.Path = summary.Path
	r.Date = summary.Date
	r.Entries = summary.Entries
	r.Updated = summary.Updated
	r.DryRun = summary.DryRun
	r.Status = RunStatusSuccess
	r.FinishedAt = time.Now()
}

// Fail stamps the run with the error that aborted it
func (r *Run) Fail(err error) {
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	r.FinishedAt = time.Now()
}
