package sitemap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/romangod6/sitemap-updater/internal/utils"
)

// Updater rewrites lastmod dates in a local sitemap.
type Updater struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// Location defaults to the process local time zone.
	Location *time.Location
	// DryRun skips the write; the summary still reports what would change.
	DryRun bool
	Logger *utils.RunLogger
}

func NewUpdater(logger *utils.RunLogger) *Updater {
	return &Updater{
		Now:    time.Now,
		Logger: logger,
	}
}

// Today returns the date the updater writes, as YYYY-MM-DD.
func (u *Updater) Today() string {
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	t := now()
	if u.Location != nil {
		t = t.In(u.Location)
	}
	return t.Format(models.DateLayout)
}

// Update sets every entry's lastmod in the sitemap at path to today's date
// and writes the file back. Nothing is written unless the whole document
// parsed.
func (u *Updater) Update(path string) (models.UpdateSummary, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.UpdateSummary{Path: path}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	summary := models.UpdateSummary{Path: abs, DryRun: u.DryRun}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return summary, fmt.Errorf("%w: %s", ErrFileNotFound, abs)
	}
	if err != nil {
		return summary, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return summary, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, abs)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return summary, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = abs
		}
		return summary, err
	}
	u.Logger.LogDebug("Parsed %s (%d bytes, encoding %q)", abs, len(data), doc.Encoding)

	summary.Date = u.Today()
	summary.Entries = len(doc.urlElements())
	if summary.Entries == 0 {
		u.Logger.LogWarn("No <url> entries in the sitemap namespace found in %s", abs)
	}
	summary.Updated, summary.WithDate = doc.SetLastMod(summary.Date)
	u.Logger.LogDebug("%d of %d entries carry a lastmod, %d changed", summary.WithDate, summary.Entries, summary.Updated)

	out := doc.Bytes()

	if u.DryRun {
		u.Logger.LogInfo("Dry run: %s left untouched", abs)
		return summary, nil
	}

	if bytes.Equal(out, data) {
		u.Logger.LogDebug("Content unchanged, skipping write of %s", abs)
		return summary, nil
	}

	if err := WriteFileAtomic(abs, out); err != nil {
		return summary, err
	}
	u.Logger.LogDebug("Wrote %d bytes to %s", len(out), abs)

	return summary, nil
}
