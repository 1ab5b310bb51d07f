package main

import (
	"testing"

	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReportsDuplicates(t *testing.T) {
	report := analyze([]models.URL{
		{Loc: "https://example.com/a", LastMod: "2024-01-01", HasLastMod: true},
		{Loc: "https://example.com/b"},
		{Loc: "https://example.com/a", LastMod: "2024-02-02", HasLastMod: true},
		{Loc: "https://example.com/a"},
	})

	assert.Equal(t, 2, report.withDate)
	assert.Equal(t, map[string]int{"https://example.com/a": 3}, report.duplicates)
	assert.Equal(t, map[string]int{"2024-01-01": 1, "2024-02-02": 1}, report.dates)
	assert.Equal(t, []string{"2024-01-01", "2024-02-02"}, sortedKeys(report.dates))
}

func TestAnalyzeNoDuplicates(t *testing.T) {
	report := analyze([]models.URL{{Loc: "a"}, {Loc: "b"}})
	assert.Empty(t, report.duplicates)
	assert.Zero(t, report.withDate)
}
