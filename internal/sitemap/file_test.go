package sitemap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/romangod6/sitemap-updater/internal/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicKeepsPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, sitemap.WriteFileAtomic(path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sitemap.xml")
	require.Error(t, sitemap.WriteFileAtomic(path, []byte("data")))
}

func TestResolveDefaultPath(t *testing.T) {
	path, err := sitemap.ResolveDefaultPath()
	require.NoError(t, err)
	assert.Equal(t, sitemap.DefaultFileName, filepath.Base(path))
	assert.True(t, filepath.IsAbs(path))
}
