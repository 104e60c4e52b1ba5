package balfinder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Request carries everything the finder needs for one healpix: the coadd to
// read, the directory to write the BAL catalog into, and run-level options.
type Request struct {
	CoaddPath string
	OutDir    string
	Overwrite bool
	Verbose   bool
	Release   string
}

// Finder runs BAL detection for a single healpix. The catalog path is chosen
// by the finder itself inside Request.OutDir.
type Finder interface {
	Find(ctx context.Context, req Request) error
}

// Exec invokes an external finder executable. The zero value is not usable;
// construct with [NewExec].
type Exec struct {
	bin string
}

// NewExec returns an Exec that runs the given executable (a name resolved on
// PATH or an explicit path).
func NewExec(bin string) *Exec {
	return &Exec{bin: bin}
}

// Find runs the finder for one coadd. When verbose, finder stderr is tee'd
// to os.Stderr in real time; otherwise it is captured silently and only
// surfaces through error classification.
func (e *Exec) Find(ctx context.Context, req Request) error {
	args := BuildArgs(req)
	cmd := exec.CommandContext(ctx, e.bin, args...)

	var stderrBuf bytes.Buffer
	if req.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
		cmd.Stdout = os.Stdout
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &Error{
		Type:     Classify(ctx, stderrBuf.String()),
		ExitCode: exitCode,
		Stderr:   stderrBuf.String(),
		cause:    err,
	}
}

// BuildArgs maps a Request onto the finder's command line.
func BuildArgs(req Request) []string {
	args := []string{
		req.CoaddPath,
		"--altbaldir", req.OutDir,
		"--release", req.Release,
	}
	if req.Overwrite {
		args = append(args, "--overwrite")
	}
	if req.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

// Error is a classified finder failure.
type Error struct {
	Type     ErrorType
	ExitCode int
	Stderr   string
	cause    error
}

func (e *Error) Error() string {
	msg := string(e.Type)
	if e.ExitCode >= 0 {
		msg += " (exit status " + strconv.Itoa(e.ExitCode) + ")"
	}
	return "balfinder: " + msg
}

func (e *Error) Unwrap() error { return e.cause }
