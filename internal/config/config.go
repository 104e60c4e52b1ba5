// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation. Defaults match the legacy
// runbalfinder script for parity.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// --- Enum types for validated string fields ---

// Survey selects the DESI survey subdirectory of a data release.
type Survey string

const (
	SurveySV1  Survey = "sv1"
	SurveySV2  Survey = "sv2"
	SurveySV3  Survey = "sv3"
	SurveyMain Survey = "main" // Main survey (default).
)

// Moon is the moon-brightness category subdirectory.
type Moon string

const (
	MoonDark   Moon = "dark"   // Dark time (default).
	MoonBright Moon = "bright" // Bright time.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultRedux is the spectroscopic reduction root used when neither the
// DESI_SPECTRO_REDUX environment variable nor --redux is set. It is the
// NERSC path the legacy script hardcoded.
const DefaultRedux = "/global/cfs/cdirs/desi/spectro/redux"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a YAML config file, and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Data selection.
	Redux   string   `yaml:"redux"`   // Base input root. Default: $DESI_SPECTRO_REDUX or DefaultRedux.
	Release string   `yaml:"release"` // Data release subdirectory. Default: "everest".
	Survey  Survey   `yaml:"survey"`  // Survey subdirectory. Default: "main".
	Moon    Moon     `yaml:"moon"`    // Moon brightness. Default: "dark".
	Healpix []string `yaml:"healpix"` // Optional subset of healpix to process; empty means all.

	// Output.
	OutDir     string `yaml:"outdir"` // Root directory for output catalogs (required).
	ReportFile string `yaml:"report"` // Optional YAML run-report path.

	// External finder.
	FinderBin string `yaml:"finder"` // Finder executable. Default: "desibalfinder".

	// Behavior flags.
	Clobber bool `yaml:"clobber"` // Overwrite existing BAL catalogs.
	DryRun  bool `yaml:"-"`       // Preview only; never invoke the finder.

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`
	LogFile   string    `yaml:"log"` // Optional log file path.
	CheckOnly bool      `yaml:"-"`   // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// runbalfinder script. Used as the base before the config file and
// [ParseFlags] apply overrides.
func DefaultConfig() Config {
	redux := os.Getenv("DESI_SPECTRO_REDUX")
	if redux == "" {
		redux = DefaultRedux
	}
	return Config{
		Redux:     redux,
		Release:   "everest",
		Survey:    SurveyMain,
		Moon:      MoonDark,
		FinderBin: "desibalfinder",
		Clobber:   false,
		DryRun:    false,
		Verbose:   false,
		ColorMode: ColorAuto,
		CheckOnly: false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields (survey, moon, color) hold valid values
// and that a data root is known. When not in CheckOnly mode, it also requires
// an output directory.
func (c *Config) Validate() error {
	switch c.Survey {
	case SurveySV1, SurveySV2, SurveySV3, SurveyMain:
		// valid
	default:
		return fmt.Errorf("invalid survey %q (use sv1, sv2, sv3 or main)", c.Survey)
	}

	switch c.Moon {
	case MoonDark, MoonBright:
		// valid
	default:
		return fmt.Errorf("invalid moon brightness %q (use 'dark' or 'bright')", c.Moon)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always or never)", c.ColorMode)
	}

	if c.Redux == "" {
		return errors.New("no data root (set --redux or DESI_SPECTRO_REDUX)")
	}
	if c.Release == "" {
		return errors.New("release must not be empty")
	}
	if c.FinderBin == "" {
		return errors.New("finder executable must not be empty")
	}

	for _, hp := range c.Healpix {
		if strings.TrimSpace(hp) == "" {
			return errors.New("healpix list contains an empty entry")
		}
	}

	if c.CheckOnly {
		return nil
	}
	if c.OutDir == "" {
		return errors.New("need an output directory (--outdir)")
	}
	return nil
}
