package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into data selection, output, behavior, display, and utility.
// An optional YAML config file (--config) is pre-scanned from argv and loaded
// before flag definitions bind, so flags always override the file.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, bad enum value, unreadable config file).
func ParseFlags(cfg *Config, args []string, version string) error {
	// The config file must be applied before flag values bind to cfg,
	// otherwise file values would clobber flags given on the command line.
	if path := preScanConfigFlag(args); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return err
		}
	}

	fs := flag.NewFlagSet("balpipe", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags

	defineSelectionFlags(fs, cfg)
	defineOutputFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, &util)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &util)

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "balpipe v"+version)
		os.Exit(0)
	}

	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected positional argument %q", fs.Args()[0])
	}

	cfg.Redux = NormalizeDirArg(cfg.Redux)
	cfg.OutDir = NormalizeDirArg(cfg.OutDir)
	return nil
}

// utilityFlags holds boolean flags that are applied after Parse.
// These either resolve a pair (--color/--no-color) or trigger exit (showHelp, showVersion).
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
	configPath  string // registered so Parse accepts it; value consumed by preScanConfigFlag
}

// defineSelectionFlags registers -r/--release, -s/--survey, -m/--moon, -hp/--healpix, --redux.
func defineSelectionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Release, "release", cfg.Release, "Data release subdirectory")
	fs.StringVar(&cfg.Release, "r", cfg.Release, "Same as --release")
	fs.Var(&surveyValue{&cfg.Survey}, "survey", "Survey subdirectory: sv1 | sv2 | sv3 | main")
	fs.Var(&surveyValue{&cfg.Survey}, "s", "Same as --survey")
	fs.Var(&moonValue{&cfg.Moon}, "moon", "Moon brightness: bright | dark")
	fs.Var(&moonValue{&cfg.Moon}, "m", "Same as --moon")
	fs.Var(&healpixListValue{&cfg.Healpix}, "healpix", "Healpix number(s) to process (comma-separated, repeatable); default is all")
	fs.Var(&healpixListValue{&cfg.Healpix}, "hp", "Same as --healpix")
	fs.StringVar(&cfg.Redux, "redux", cfg.Redux, "Base input root (overrides DESI_SPECTRO_REDUX)")
}

// defineOutputFlags registers -o/--outdir, --report, --finder.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "Root directory for output catalogs (required)")
	fs.StringVar(&cfg.OutDir, "o", cfg.OutDir, "Same as --outdir")
	fs.StringVar(&cfg.ReportFile, "report", cfg.ReportFile, "Write a YAML run report to this path")
	fs.StringVar(&cfg.FinderBin, "finder", cfg.FinderBin, "BAL finder executable")
}

// defineBehaviorFlags registers -c/--clobber and -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Clobber, "clobber", cfg.Clobber, "Overwrite BAL catalogs that already exist")
	fs.BoolVar(&cfg.Clobber, "c", cfg.Clobber, "Same as --clobber")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not invoke the finder")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, u *utilityFlags) {
	fs.StringVar(&u.configPath, "config", "", "YAML config file (flags override it)")
	fs.StringVar(&u.configPath, "C", "", "Same as --config")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags resolves the --color/--no-color pair (--no-color wins).
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// preScanConfigFlag finds the --config/-C value in raw argv before the flag
// set parses. Supports "--config path", "--config=path" and the -C forms.
func preScanConfigFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		switch {
		case name == "config" || name == "C":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(name, "config="):
			return strings.TrimPrefix(name, "config=")
		case strings.HasPrefix(name, "C="):
			return strings.TrimPrefix(name, "C=")
		}
	}
	return ""
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "balpipe v" + version + " — run the BAL finder over DESI healpix data"},
		{"", ""},
		{"  balpipe [OPTIONS] --outdir <dir>", ""},
		{"", ""},
		{"Data selection", ""},
		{"  -r, --release <name>", "Data release subdirectory (default: everest)"},
		{"  -s, --survey <name>", "Survey subdirectory: sv1 | sv2 | sv3 | main (default: main)"},
		{"  -m, --moon <name>", "Moon brightness: bright | dark (default: dark)"},
		{"  -hp, --healpix <list>", "Healpix number(s), comma-separated (default: all)"},
		{"  --redux <dir>", "Base input root (default: $DESI_SPECTRO_REDUX)"},
		{"", ""},
		{"Output", ""},
		{"  -o, --outdir <dir>", "Root directory for output catalogs (required)"},
		{"  --report <path>", "Write a YAML run report"},
		{"  --finder <path>", "BAL finder executable (default: desibalfinder)"},
		{"", ""},
		{"Behavior", ""},
		{"  -c, --clobber", "Overwrite BAL catalogs that already exist"},
		{"  -d, --dry-run", "Preview only; do not invoke the finder"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -C, --config <path>", "YAML config file (flags override it)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --check", "System diagnostics (finder, data root)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (Survey, Moon) and the
// healpix list with flag.Var.

type surveyValue struct{ p *Survey }

func (s *surveyValue) String() string {
	if s.p == nil {
		return ""
	}
	return string(*s.p)
}

func (s *surveyValue) Set(v string) error {
	switch strings.ToLower(v) {
	case "sv1":
		*s.p = SurveySV1
	case "sv2":
		*s.p = SurveySV2
	case "sv3":
		*s.p = SurveySV3
	case "main":
		*s.p = SurveyMain
	default:
		return fmt.Errorf("invalid survey %q (use sv1, sv2, sv3 or main)", v)
	}
	return nil
}

type moonValue struct{ p *Moon }

func (m *moonValue) String() string {
	if m.p == nil {
		return ""
	}
	return string(*m.p)
}

func (m *moonValue) Set(v string) error {
	switch strings.ToLower(v) {
	case "dark":
		*m.p = MoonDark
	case "bright":
		*m.p = MoonBright
	default:
		return fmt.Errorf("invalid moon brightness %q (use 'dark' or 'bright')", v)
	}
	return nil
}

// healpixListValue accumulates healpix names across repeated flags and
// comma-separated values, so "-hp 100,101 -hp 9550" yields all three.
type healpixListValue struct{ p *[]string }

func (h *healpixListValue) String() string {
	if h.p == nil {
		return ""
	}
	return strings.Join(*h.p, ",")
}

func (h *healpixListValue) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		hp := strings.TrimSpace(part)
		if hp == "" {
			continue
		}
		*h.p = append(*h.p, hp)
	}
	return nil
}
