// Package report writes a machine-readable YAML summary of a batch run,
// for rerun tooling and bookkeeping of healpix that need attention.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/quasarlab/balpipe/internal/config"
	"github.com/quasarlab/balpipe/internal/layout"
	"github.com/quasarlab/balpipe/internal/pipeline"
)

// Failure mirrors a per-healpix failure in the report file.
type Failure struct {
	Healpix   string `yaml:"healpix"`
	ErrorType string `yaml:"error_type"`
}

// Run is the full report document for one invocation.
type Run struct {
	ID         string    `yaml:"id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`

	Release  string `yaml:"release"`
	Survey   string `yaml:"survey"`
	Moon     string `yaml:"moon"`
	DataRoot string `yaml:"data_root"`
	OutRoot  string `yaml:"out_root"`
	Clobber  bool   `yaml:"clobber"`
	DryRun   bool   `yaml:"dry_run"`

	Total        int   `yaml:"total"`
	Processed    int   `yaml:"processed"`
	Skipped      int   `yaml:"skipped"`
	Failed       int   `yaml:"failed"`
	CatalogBytes int64 `yaml:"catalog_bytes"`

	Failures []Failure `yaml:"failures,omitempty"`
}

// New assembles a report document from the run configuration and outcome.
// Every run gets a fresh ID so reports can be collected without collisions.
func New(cfg *config.Config, stats pipeline.RunStats, startedAt, finishedAt time.Time) Run {
	lay := layout.FromConfig(cfg)
	r := Run{
		ID:           uuid.NewString(),
		StartedAt:    startedAt.UTC(),
		FinishedAt:   finishedAt.UTC(),
		Release:      cfg.Release,
		Survey:       string(cfg.Survey),
		Moon:         string(cfg.Moon),
		DataRoot:     lay.DataRoot(),
		OutRoot:      lay.OutRoot(),
		Clobber:      cfg.Clobber,
		DryRun:       cfg.DryRun,
		Total:        stats.Total,
		Processed:    stats.Processed,
		Skipped:      stats.Skipped,
		Failed:       stats.Failed,
		CatalogBytes: stats.TotalCatalogBytes,
	}
	for _, f := range stats.Failures {
		r.Failures = append(r.Failures, Failure{
			Healpix:   f.Healpix,
			ErrorType: string(f.ErrorType),
		})
	}
	return r
}

// Write marshals the report to YAML at path, creating parent directories as
// needed.
func (r Run) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
