package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/romangod6/sitemap-updater/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := utils.NewRunLogger(&buf, "", false)
	require.NoError(t, err)

	logger.LogInfo("updated %d", 2)
	logger.LogError("broken %s", "file")
	logger.LogDebug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[INFO] updated 2")
	assert.Contains(t, out, "[ERROR] broken file")
	assert.NotContains(t, out, "hidden")
	require.NoError(t, logger.Close())
}

func TestRunLoggerDebugAndFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := utils.NewRunLogger(&buf, dir, true)
	require.NoError(t, err)

	logger.LogDebug("visible")
	require.NoError(t, logger.Close())

	assert.Contains(t, buf.String(), "[DEBUG] visible")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] visible")
}

func TestNilRunLoggerIsSilent(t *testing.T) {
	var logger *utils.RunLogger
	assert.NotPanics(t, func() {
		logger.LogInfo("ignored")
		logger.LogDebug("ignored")
		_ = logger.Close()
	})
}
