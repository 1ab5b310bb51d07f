package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/romangod6/sitemap-updater/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Sitemap.Path)
	assert.False(t, cfg.Sitemap.DryRun)
	assert.Empty(t, cfg.History.Driver)
	assert.Empty(t, cfg.History.URL)
	assert.Empty(t, cfg.Log.Dir)

	loc, err := cfg.GetLocation()
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestLoadConfigSearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "updater.yaml"), []byte(`
sitemap:
  path: public/sitemap.xml
  dryrun: true
log:
  debug: true
`), 0o644))
	chdir(t, dir)

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "public/sitemap.xml", cfg.Sitemap.Path)
	assert.True(t, cfg.Sitemap.DryRun)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
update:
  timezone: UTC
history:
  driver: sqlite3
  url: /tmp/runs.db
`), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.History.Driver)
	assert.Equal(t, "/tmp/runs.db", cfg.History.URL)

	loc, err := cfg.GetLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfigDriverWithoutURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updater.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  driver: sqlite3\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history.url is required")
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	var cfg config.Config
	require.NoError(t, cfg.Validate())

	cfg.History.Driver = "mysql"
	require.Error(t, cfg.Validate())

	cfg.History.Driver = "postgres"
	cfg.History.URL = ""
	require.Error(t, cfg.Validate())

	cfg.History.URL = "postgres://localhost/updater"
	require.NoError(t, cfg.Validate())

	cfg.Update.Timezone = "Not/AZone"
	require.Error(t, cfg.Validate())
}
