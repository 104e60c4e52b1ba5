package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/quasarlab/balpipe/internal/balfinder"
	"github.com/quasarlab/balpipe/internal/config"
	"github.com/quasarlab/balpipe/internal/display"
	"github.com/quasarlab/balpipe/internal/layout"
	"github.com/quasarlab/balpipe/internal/logging"
)

// Run is the top-level batch entry point. It discovers the available healpix,
// validates the requested subset, scaffolds the output tree, processes each
// healpix sequentially, and returns aggregate stats.
//
// A non-nil error is a fatal configuration failure (unreadable data root,
// unknown requested healpix, output tree not creatable) and means no healpix
// was processed. Per-healpix finder failures are not errors here: they are
// recorded in the stats and summarized, and the run continues.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, finder balfinder.Finder) (RunStats, error) {
	var stats RunStats
	lay := layout.FromConfig(cfg)

	available, err := Discover(lay.DataRoot())
	if err != nil {
		return stats, err
	}
	log.Debug(cfg.Verbose, "Discovered %d healpix under %s", len(available), lay.DataRoot())

	selected, err := Select(available, cfg.Healpix)
	if err != nil {
		return stats, err
	}
	stats.Total = len(selected)

	// Scaffold the whole output tree before touching any healpix, so a
	// permission problem surfaces before work starts.
	if err := layout.EnsureDir(lay.OutRoot()); err != nil {
		return stats, err
	}
	for _, hp := range selected {
		if err := layout.EnsureDir(lay.OutputDir(hp)); err != nil {
			return stats, err
		}
	}

	logRunHeader(cfg, log, len(available), &stats, lay)

	start := time.Now()
	for i, hp := range selected {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processHealpix(ctx, cfg, log, lay, finder, hp, &stats)
	}

	logSummary(cfg, log, &stats, time.Since(start))
	return stats, nil
}

// processHealpix handles one healpix: resolve paths → skip-existing check →
// dry-run check → invoke the finder → record the outcome.
func processHealpix(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	lay layout.Layout,
	finder balfinder.Finder,
	hp string,
	stats *RunStats,
) {
	coaddPath := lay.CoaddPath(hp)
	balPath := lay.BalTablePath(hp)

	log.Info("[%d/%d] healpix %s", stats.Current, stats.Total, hp)
	log.Debug(cfg.Verbose, "  Coadd file: %s", coaddPath)
	log.Debug(cfg.Verbose, "  BAL file:   %s", balPath)

	// An existing catalog is only recomputed when clobbering.
	if !cfg.Clobber {
		if _, err := os.Stat(balPath); err == nil {
			log.Warn("  Skip (exists): %s", lay.BalTableName(hp))
			stats.Skipped++
			return
		}
	}

	if cfg.DryRun {
		log.Success("  [DRY] Would run finder on %s", lay.CoaddName(hp))
		stats.Processed++
		return
	}

	req := balfinder.Request{
		CoaddPath: coaddPath,
		OutDir:    lay.OutputDir(hp),
		Overwrite: cfg.Clobber,
		Verbose:   cfg.Verbose,
		Release:   cfg.Release,
	}

	if err := finder.Find(ctx, req); err != nil {
		errType := balfinder.TypeOf(err)
		log.Error("  Finder failed at healpix %s (%s); continuing", hp, errType)
		log.Debug(cfg.Verbose, "  %v", err)
		stats.RecordFailure(hp, errType)
		return
	}

	stats.Processed++
	if fi, err := os.Stat(balPath); err == nil {
		stats.TotalCatalogBytes += fi.Size()
		log.Success("  Wrote %s (%s)", lay.BalTableName(hp), display.FormatBytes(fi.Size()))
	} else {
		log.Success("  Finder finished for healpix %s", hp)
	}
}

// --- Logging helpers ---

func logRunHeader(cfg *config.Config, log *logging.Logger, available int, stats *RunStats, lay layout.Layout) {
	log.Info("Found %d healpix, processing %d", available, stats.Total)
	log.Info("Release: %s | Survey: %s | Moon: %s", cfg.Release, cfg.Survey, cfg.Moon)
	log.Info("In:  %s", lay.DataRoot())
	log.Info("Out: %s", lay.OutRoot())
	if cfg.Clobber {
		log.Info("Clobber: existing BAL catalogs will be overwritten")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — the finder will not be invoked")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats, elapsed time.Duration) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d processed, %d skipped, %d failed in %s",
		stats.Processed, stats.Skipped, stats.Failed, display.FormatDuration(elapsed))
	if stats.TotalCatalogBytes > 0 {
		log.Info("Catalogs written: %s", display.FormatBytes(stats.TotalCatalogBytes))
	}

	log.Info("Healpix with errors and error types:")
	if len(stats.Failures) == 0 {
		log.Info("  (none)")
		return
	}
	for _, f := range stats.Failures {
		log.Warn("  %s : %s", f.Healpix, f.ErrorType)
	}
}
