package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/romangod6/sitemap-updater/config"
	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/romangod6/sitemap-updater/internal/sitemap"
	"github.com/romangod6/sitemap-updater/internal/storage"
	"github.com/romangod6/sitemap-updater/internal/utils"
)

const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
)

// run is the whole program; main only supplies the process streams.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("updater", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to a config file (default: updater.yaml in . or ./config)")
	dryRun := fs.Bool("dry-run", false, "report what would change without writing the sitemap")
	history := fs.Int("history", 0, "print the last N recorded runs and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitInvalidInvocation
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return ExitInvalidInvocation
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return ExitConfigError
	}
	if *dryRun {
		cfg.Sitemap.DryRun = true
	}

	logger, err := utils.NewRunLogger(stderr, cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return ExitConfigError
	}
	defer logger.Close()

	if *history > 0 {
		return printHistory(stdout, logger, cfg, *history)
	}

	path := cfg.Sitemap.Path
	if path == "" {
		path, err = sitemap.ResolveDefaultPath()
		if err != nil {
			logger.LogError("%v", err)
			return ExitFailure
		}
	}

	loc, err := cfg.GetLocation()
	if err != nil {
		logger.LogError("%v", err)
		return ExitConfigError
	}

	store, err := storage.Open(cfg.History.Driver, cfg.History.URL)
	if err != nil {
		logger.LogError("Run history disabled: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	updater := sitemap.NewUpdater(logger)
	updater.Location = loc
	updater.DryRun = cfg.Sitemap.DryRun

	fmt.Fprintf(stdout, "🔄 Updating %s...\n", filepath.Base(path))
	fmt.Fprintln(stdout)

	record := models.NewRun(path)
	summary, err := updater.Update(path)
	if err != nil {
		record.Path = summary.Path
		record.Fail(err)
		logger.LogError("Update failed: %v", err)
	} else {
		record.Finish(summary)
		logger.LogInfo("Run %s: %d of %d entries changed to %s", record.ID, summary.Updated, summary.Entries, summary.Date)
	}
	report(stdout, summary, err)
	recordRun(store, record, logger)

	fmt.Fprintln(stdout)
	if err != nil {
		fmt.Fprintln(stdout, "⚠️  Please check the error and try again.")
		return ExitFailure
	}
	fmt.Fprintln(stdout, "✨ Ready to deploy with fresh sitemap!")
	return ExitSuccess
}

func report(w io.Writer, summary models.UpdateSummary, err error) {
	switch {
	case err == nil && summary.DryRun:
		fmt.Fprintln(w, "✅ Dry run complete, sitemap left untouched.")
		fmt.Fprintf(w, "   📅 Would update %d lastmod date(s) to: %s\n", summary.Updated, summary.Date)
		fmt.Fprintf(w, "   📄 File: %s\n", summary.Path)
	case err == nil:
		fmt.Fprintln(w, "✅ Sitemap updated successfully!")
		fmt.Fprintf(w, "   📅 Updated %d lastmod date(s) to: %s\n", summary.Updated, summary.Date)
		fmt.Fprintf(w, "   📄 File: %s\n", summary.Path)
	case errors.Is(err, sitemap.ErrFileNotFound):
		fmt.Fprintf(w, "❌ Error: %s not found at %s\n", filepath.Base(summary.Path), summary.Path)
	default:
		fmt.Fprintf(w, "❌ Error: %v\n", err)
	}
}

// recordRun stores the run in the history store when one is configured. A
// history failure never changes the outcome of the update.
func recordRun(store storage.Store, record *models.Run, logger *utils.RunLogger) {
	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.RecordRun(ctx, record); err != nil {
		logger.LogError("Failed to record run %s: %v", record.ID, err)
		return
	}
	logger.LogDebug("Recorded run %s", record.ID)
}

func printHistory(w io.Writer, logger *utils.RunLogger, cfg *config.Config, limit int) int {
	if cfg.History.Driver == "" {
		logger.LogError("Run history is disabled; set history.driver to sqlite3 or postgres")
		return ExitConfigError
	}

	store, err := storage.Open(cfg.History.Driver, cfg.History.URL)
	if err != nil {
		logger.LogError("%v", err)
		return ExitFailure
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		logger.LogError("Failed to list runs: %v", err)
		return ExitFailure
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs")
		return ExitSuccess
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %-7s  %s  updated %d/%d  %s",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, r.Date, r.Updated, r.Entries, r.Path)
		if r.DryRun {
			line += "  (dry run)"
		}
		if r.Error != "" {
			line += "  error: " + r.Error
		}
		fmt.Fprintln(w, line)
	}
	return ExitSuccess
}
