package pipeline

import "github.com/quasarlab/balpipe/internal/balfinder"

// Failure pairs a healpix with the error category its finder run produced.
type Failure struct {
	Healpix   string
	ErrorType balfinder.ErrorType
}

// RunStats tracks aggregate counters and per-healpix failures across a run.
type RunStats struct {
	Total             int // Healpix selected for this run.
	Current           int // 1-based index of the healpix being processed.
	Processed         int // Finder invoked and returned success (or dry-run would-process).
	Skipped           int // Existing catalog, clobber off.
	Failed            int // Finder returned an error.
	TotalCatalogBytes int64

	Failures []Failure
}

// RecordFailure appends a failure and bumps the counter. Each healpix is
// processed at most once per run, so it appears at most once here.
func (s *RunStats) RecordFailure(healpix string, errType balfinder.ErrorType) {
	s.Failed++
	s.Failures = append(s.Failures, Failure{Healpix: healpix, ErrorType: errType})
}
