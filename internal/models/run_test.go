package models_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRun(t *testing.T) {
	run := models.NewRun("sitemap.xml")
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, "sitemap.xml", run.Path)
	assert.False(t, run.StartedAt.IsZero())
	assert.True(t, run.FinishedAt.IsZero())
}

func TestRunFinishAndFail(t *testing.T) {
	run := models.NewRun("sitemap.xml")
	run.Finish(models.UpdateSummary{Path: "/abs/sitemap.xml", Date: "2025-05-01", Entries: 4, Updated: 3, DryRun: true})

	assert.Equal(t, models.RunStatusSuccess, run.Status)
	assert.Equal(t, "/abs/sitemap.xml", run.Path)
	assert.Equal(t, 3, run.Updated)
	assert.True(t, run.DryRun)
	assert.False(t, run.FinishedAt.IsZero())

	failed := models.NewRun("sitemap.xml")
	failed.Fail(errors.New("boom"))
	assert.Equal(t, models.RunStatusFailed, failed.Status)
	assert.Equal(t, "boom", failed.Error)
}
