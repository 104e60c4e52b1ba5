// Command balpipe runs the external BAL finder over the healpix tiles of a
// DESI data release, writing one catalog per healpix into an output tree that
// mirrors the release layout.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the batch pipeline. Per-healpix finder failures
// are summarized and do not affect the exit status; only configuration
// failures (bad flags, unknown healpix, unwritable output tree, missing
// finder) exit non-zero.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quasarlab/balpipe/internal/balfinder"
	"github.com/quasarlab/balpipe/internal/check"
	"github.com/quasarlab/balpipe/internal/config"
	"github.com/quasarlab/balpipe/internal/display"
	"github.com/quasarlab/balpipe/internal/logging"
	"github.com/quasarlab/balpipe/internal/pipeline"
	"github.com/quasarlab/balpipe/internal/report"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "balpipe: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "balpipe: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "balpipe: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== balpipe v%s (%s) ===", version, commit)

	// Fail fast if the finder executable is unavailable, before any
	// directories are created.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v (looked for %q)", err, cfg.FinderBin)
			return 1
		}
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// batch loop can stop between healpix without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current healpix…")
		cancel()
	}()

	// Phase 4: Run the batch loop.
	finder := balfinder.NewExec(cfg.FinderBin)
	startedAt := time.Now()
	stats, err := pipeline.Run(ctx, &cfg, log, finder)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if cfg.ReportFile != "" {
		r := report.New(&cfg, stats, startedAt, time.Now())
		if err := r.Write(cfg.ReportFile); err != nil {
			log.Warn("Could not write run report: %v", err)
		} else {
			log.Info("Run report: %s", cfg.ReportFile)
		}
	}

	// Per-healpix failures were summarized above; they are bookkeeping for
	// by-hand reruns, not a process failure.
	return 0
}
