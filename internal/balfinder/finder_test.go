package balfinder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "minimal",
			req: Request{
				CoaddPath: "/redux/everest/healpix/main/dark/100/100/coadd-main-dark-100.fits",
				OutDir:    "/catalogs/everest/healpix/main/dark/100/100",
				Release:   "everest",
			},
			want: []string{
				"/redux/everest/healpix/main/dark/100/100/coadd-main-dark-100.fits",
				"--altbaldir", "/catalogs/everest/healpix/main/dark/100/100",
				"--release", "everest",
			},
		},
		{
			name: "overwrite and verbose",
			req: Request{
				CoaddPath: "/in/coadd-main-dark-100.fits",
				OutDir:    "/out",
				Release:   "fuji",
				Overwrite: true,
				Verbose:   true,
			},
			want: []string{
				"/in/coadd-main-dark-100.fits",
				"--altbaldir", "/out",
				"--release", "fuji",
				"--overwrite", "--verbose",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs(tt.req)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("BuildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   ErrorType
	}{
		{
			"python FileNotFoundError",
			"FileNotFoundError: [Errno 2] No such file or directory: 'coadd-main-dark-100.fits'",
			TypeMissingCoadd,
		},
		{
			"missing coadd message",
			"error: coadd file coadd-main-dark-100.fits not found",
			TypeMissingCoadd,
		},
		{
			"fitsio failure",
			"fitsio.FITSRuntimeError: error reading HDU 1",
			TypeCorruptFits,
		},
		{
			"truncated fits",
			"OSError: Empty or corrupt FITS file",
			TypeCorruptFits,
		},
		{
			"python MemoryError",
			"MemoryError\n",
			TypeOutOfMemory,
		},
		{
			"kernel oom",
			"slurmstepd: error: Detected 1 oom-killed task",
			TypeOutOfMemory,
		},
		{
			"anything else",
			"ValueError: wave arrays do not match",
			TypeFinderExit,
		},
		{
			"empty stderr",
			"",
			TypeFinderExit,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(context.Background(), tt.stderr)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.stderr, got, tt.want)
			}
		})
	}
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Cancellation wins even when stderr would match another category.
	if got := Classify(ctx, "MemoryError"); got != TypeInterrupted {
		t.Errorf("Classify = %q, want %q", got, TypeInterrupted)
	}
}

func TestTypeOf(t *testing.T) {
	fe := &Error{Type: TypeCorruptFits, ExitCode: 1}
	if got := TypeOf(fe); got != TypeCorruptFits {
		t.Errorf("TypeOf(*Error) = %q, want %q", got, TypeCorruptFits)
	}
	wrapped := fmt.Errorf("healpix 100: %w", fe)
	if got := TypeOf(wrapped); got != TypeCorruptFits {
		t.Errorf("TypeOf(wrapped) = %q, want %q", got, TypeCorruptFits)
	}
	if got := TypeOf(errors.New("boom")); got != TypeUnknown {
		t.Errorf("TypeOf(plain) = %q, want %q", got, TypeUnknown)
	}
}

func TestError_Message(t *testing.T) {
	e := &Error{Type: TypeFinderExit, ExitCode: 2}
	if got := e.Error(); got != "balfinder: finder-exit (exit status 2)" {
		t.Errorf("Error() = %q", got)
	}
	e2 := &Error{Type: TypeInterrupted, ExitCode: -1}
	if got := e2.Error(); got != "balfinder: interrupted" {
		t.Errorf("Error() = %q", got)
	}
}

// Runs the Exec wrapper against /bin/sh to verify stderr capture and
// classification end to end without the real finder.
func TestExec_FailureClassified(t *testing.T) {
	e := NewExec("/bin/sh")
	// sh treats the coadd path as a script; a missing one makes it print
	// "No such file or directory" and exit non-zero.
	req := Request{
		CoaddPath: "/nonexistent/script.sh",
		OutDir:    t.TempDir(),
		Release:   "everest",
	}
	err := e.Find(context.Background(), req)
	if err == nil {
		t.Fatal("Find should fail for a nonexistent script")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if fe.Type != TypeMissingCoadd && fe.Type != TypeFinderExit {
		t.Errorf("Type = %q, want missing-coadd or finder-exit", fe.Type)
	}
	if fe.ExitCode < 0 {
		t.Errorf("ExitCode = %d, want a real exit status", fe.ExitCode)
	}
}
