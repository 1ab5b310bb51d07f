package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

type Run struct {
	ID         uuid.UUID `json:"id"`
	Path       string    `json:"path"`
	Date       string    `json:"date"`
	Entries    int       `json:"entries"`
	Updated    int       `json:"updated"`
	DryRun     bool      `json:"dryRun"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
