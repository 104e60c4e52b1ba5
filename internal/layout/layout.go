// Package layout encodes the directory and filename conventions of a DESI
// spectroscopic data release, and the mirrored conventions of the BAL
// catalog tree written next to it.
//
// Input tree:  <redux>/<release>/healpix/<survey>/<moon>/<bucket>/<healpix>/coadd-<survey>-<moon>-<healpix>.fits
// Output tree: <outdir>/<release>/healpix/<survey>/<moon>/<bucket>/<healpix>/baltable-<survey>-<moon>-<healpix>.fits
//
// where <bucket> is the first three characters of the healpix name.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quasarlab/balpipe/internal/config"
)

// Layout holds the resolved path parameters for one run. Build it once from
// the validated config and pass it by value; it is immutable after creation.
type Layout struct {
	Redux   string
	Release string
	Survey  string
	Moon    string
	OutDir  string
}

// FromConfig builds a Layout from the run configuration.
func FromConfig(cfg *config.Config) Layout {
	return Layout{
		Redux:   cfg.Redux,
		Release: cfg.Release,
		Survey:  string(cfg.Survey),
		Moon:    string(cfg.Moon),
		OutDir:  cfg.OutDir,
	}
}

// DataRoot is the input root holding the per-healpix coadd directories.
func (l Layout) DataRoot() string {
	return filepath.Join(l.Redux, l.Release, "healpix", l.Survey, l.Moon)
}

// OutRoot is the mirrored output root for BAL catalogs.
func (l Layout) OutRoot() string {
	return filepath.Join(l.OutDir, l.Release, "healpix", l.Survey, l.Moon)
}

// Bucket returns the 3-character prefix directory a healpix nests under.
// Healpix names shorter than three characters bucket under themselves.
func Bucket(healpix string) string {
	if len(healpix) <= 3 {
		return healpix
	}
	return healpix[:3]
}

// CoaddName is the coadd filename for a healpix within this run's survey/moon.
func (l Layout) CoaddName(healpix string) string {
	return fmt.Sprintf("coadd-%s-%s-%s.fits", l.Survey, l.Moon, healpix)
}

// BalTableName is the BAL catalog filename, derived from the coadd name by
// prefix substitution.
func (l Layout) BalTableName(healpix string) string {
	return strings.Replace(l.CoaddName(healpix), "coadd-", "baltable-", 1)
}

// InputDir is the input directory holding a healpix's coadd file.
func (l Layout) InputDir(healpix string) string {
	return filepath.Join(l.DataRoot(), Bucket(healpix), healpix)
}

// OutputDir is the mirrored output directory for a healpix.
func (l Layout) OutputDir(healpix string) string {
	return filepath.Join(l.OutRoot(), Bucket(healpix), healpix)
}

// CoaddPath is the full path of a healpix's coadd file.
func (l Layout) CoaddPath(healpix string) string {
	return filepath.Join(l.InputDir(healpix), l.CoaddName(healpix))
}

// BalTablePath is the full path of a healpix's BAL catalog file.
func (l Layout) BalTablePath(healpix string) string {
	return filepath.Join(l.OutputDir(healpix), l.BalTableName(healpix))
}

// EnsureDir creates dir (with parents) if it does not exist. Permission
// failures are wrapped with the path so the caller can abort the run with a
// useful message.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("no permission to make directory %s: %w", dir, err)
		}
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}
