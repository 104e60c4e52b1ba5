// Package pipeline orchestrates healpix discovery, output scaffolding, the
// sequential per-healpix finder loop, and the end-of-run failure summary.
package pipeline
