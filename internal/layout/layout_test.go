package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quasarlab/balpipe/internal/config"
)

func everestMainDark(redux, outdir string) Layout {
	return Layout{
		Redux:   redux,
		Release: "everest",
		Survey:  "main",
		Moon:    "dark",
		OutDir:  outdir,
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name    string
		healpix string
		want    string
	}{
		{"three digits", "100", "100"},
		{"five digits", "27256", "272"},
		{"four digits", "9550", "955"},
		{"two digits", "27", "27"},
		{"one digit", "7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.healpix); got != tt.want {
				t.Errorf("Bucket(%q) = %q, want %q", tt.healpix, got, tt.want)
			}
		})
	}
}

// Pins the canonical everest/main/dark example for healpix 100.
func TestPaths_EverestMainDark100(t *testing.T) {
	l := everestMainDark("/redux", "/catalogs")

	wantCoadd := "/redux/everest/healpix/main/dark/100/100/coadd-main-dark-100.fits"
	if got := l.CoaddPath("100"); got != wantCoadd {
		t.Errorf("CoaddPath = %q, want %q", got, wantCoadd)
	}

	wantBal := "/catalogs/everest/healpix/main/dark/100/100/baltable-main-dark-100.fits"
	if got := l.BalTablePath("100"); got != wantBal {
		t.Errorf("BalTablePath = %q, want %q", got, wantBal)
	}
}

func TestPaths_BucketNesting(t *testing.T) {
	l := everestMainDark("/redux", "/catalogs")

	wantIn := "/redux/everest/healpix/main/dark/272/27256"
	if got := l.InputDir("27256"); got != wantIn {
		t.Errorf("InputDir = %q, want %q", got, wantIn)
	}
	wantOut := "/catalogs/everest/healpix/main/dark/272/27256"
	if got := l.OutputDir("27256"); got != wantOut {
		t.Errorf("OutputDir = %q, want %q", got, wantOut)
	}
}

func TestBalTableName_PrefixSubstitution(t *testing.T) {
	l := Layout{Release: "fuji", Survey: "sv3", Moon: "bright"}

	if got := l.CoaddName("9550"); got != "coadd-sv3-bright-9550.fits" {
		t.Errorf("CoaddName = %q", got)
	}
	if got := l.BalTableName("9550"); got != "baltable-sv3-bright-9550.fits" {
		t.Errorf("BalTableName = %q", got)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Redux = "/redux"
	cfg.Release = "everest"
	cfg.Survey = config.SurveyMain
	cfg.Moon = config.MoonDark
	cfg.OutDir = "/catalogs"

	l := FromConfig(&cfg)
	want := "/redux/everest/healpix/main/dark"
	if got := l.DataRoot(); got != want {
		t.Errorf("DataRoot = %q, want %q", got, want)
	}
	want = "/catalogs/everest/healpix/main/dark"
	if got := l.OutRoot(); got != want {
		t.Errorf("OutRoot = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "everest", "healpix", "main", "dark", "100", "100")
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	fi, err := os.Stat(nested)
	if err != nil || !fi.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	// Idempotent on an existing directory.
	if err := EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir on existing dir: %v", err)
	}
}

func TestEnsureDir_PermissionDenied(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0o555); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(filepath.Join(locked, "sub")); err == nil {
		t.Error("EnsureDir should fail inside a read-only directory")
	}
}
