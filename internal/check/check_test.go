package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quasarlab/balpipe/internal/config"
)

// mockLogger satisfies Logger and records which levels were hit.
type mockLogger struct {
	errors    int
	warns     int
	successes int
}

func (m *mockLogger) Info(string, ...interface{})        {}
func (m *mockLogger) Success(string, ...interface{})     { m.successes++ }
func (m *mockLogger) Warn(string, ...interface{})        { m.warns++ }
func (m *mockLogger) Error(string, ...interface{})       { m.errors++ }
func (m *mockLogger) Debug(bool, string, ...interface{}) {}

func TestCheckDeps_MissingFinder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FinderBin = "definitely-not-a-real-finder"
	if err := CheckDeps(&cfg); err != ErrFinderNotFound {
		t.Errorf("CheckDeps = %v, want ErrFinderNotFound", err)
	}
}

func TestCheckDeps_FinderOnPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FinderBin = "sh" // always on PATH in test environments
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps = %v, want nil", err)
	}
}

func TestCheckDeps_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "desibalfinder")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.FinderBin = bin
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps(explicit path) = %v, want nil", err)
	}

	cfg.FinderBin = filepath.Join(dir, "missing")
	if err := CheckDeps(&cfg); err != ErrFinderNotFound {
		t.Errorf("CheckDeps(missing path) = %v, want ErrFinderNotFound", err)
	}
}

func TestRunCheck_ReportsMissingPieces(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FinderBin = "definitely-not-a-real-finder"
	cfg.Redux = filepath.Join(t.TempDir(), "nope")

	log := &mockLogger{}
	if ok := RunCheck(&cfg, log); ok {
		t.Error("RunCheck should report failure")
	}
	if log.errors < 2 {
		t.Errorf("errors logged = %d, want >= 2 (finder and redux)", log.errors)
	}
}

func TestRunCheck_HealthySetup(t *testing.T) {
	redux := t.TempDir()
	dataRoot := filepath.Join(redux, "everest", "healpix", "main", "dark")
	if err := os.MkdirAll(dataRoot, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.FinderBin = "sh"
	cfg.Redux = redux

	log := &mockLogger{}
	if ok := RunCheck(&cfg, log); !ok {
		t.Error("RunCheck should pass")
	}
	if log.errors != 0 {
		t.Errorf("errors logged = %d, want 0", log.errors)
	}
}
