// Package balfinder wraps the external BAL detection executable behind a
// small interface so the pipeline can be tested without spectra on disk.
//
// The real implementation ([Exec]) shells out to the desibalfinder command,
// captures its stderr, and classifies failures into stable error categories
// (missing-coadd, corrupt-fits, out-of-memory, interrupted, finder-exit)
// used by the run summary and the YAML report.
package balfinder
