// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the finder executable and data root.
package check

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quasarlab/balpipe/internal/config"
	"github.com/quasarlab/balpipe/internal/layout"
)

// ErrFinderNotFound is returned by CheckDeps when the finder executable is
// not reachable. Data-root problems are left to discovery, which reports the
// exact path it could not read.
var ErrFinderNotFound = errors.New("BAL finder executable not found")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: finder availability and
// version, reduction root, visible releases, and the resolved data root.
// This is informational only — it does not stop on failure. Returns false
// when any check failed so the caller can pick an exit code.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFinder(cfg, log)
	ok = checkRedux(cfg, log) && ok
	return ok
}

// checkFinder verifies the finder executable is reachable and logs its version.
func checkFinder(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.FinderBin)
	if err != nil {
		log.Error("finder %q not found", cfg.FinderBin)
		return false
	}
	cmd := exec.Command(path, "--version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("finder found at %s but --version failed: %v", path, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("finder: %s (%s)", firstLine, path)
	return true
}

// checkRedux verifies the reduction root exists, lists the releases visible
// under it, and reports whether the resolved data root for this run exists.
func checkRedux(cfg *config.Config, log Logger) bool {
	if _, err := os.Stat(cfg.Redux); err != nil {
		log.Error("reduction root not found: %s", cfg.Redux)
		return false
	}
	log.Success("reduction root: %s", cfg.Redux)

	entries, err := os.ReadDir(cfg.Redux)
	if err == nil {
		var releases []string
		for _, e := range entries {
			if e.IsDir() {
				releases = append(releases, e.Name())
			}
		}
		if len(releases) > 0 {
			log.Info("  releases: %s", strings.Join(releases, ", "))
		}
	}

	dataRoot := layout.FromConfig(cfg).DataRoot()
	if fi, err := os.Stat(dataRoot); err != nil || !fi.IsDir() {
		log.Warn("data root not found: %s", dataRoot)
		return true
	}
	log.Success("data root: %s", dataRoot)
	return true
}

// CheckDeps is the pre-pipeline validation: the finder executable must be
// reachable. A finder given as an explicit path is checked directly; a bare
// name is resolved on PATH. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if strings.ContainsRune(cfg.FinderBin, filepath.Separator) {
		if _, err := os.Stat(cfg.FinderBin); err != nil {
			return ErrFinderNotFound
		}
		return nil
	}
	if _, err := exec.LookPath(cfg.FinderBin); err != nil {
		return ErrFinderNotFound
	}
	return nil
}
