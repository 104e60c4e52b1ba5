package balfinder

import (
	"context"
	"errors"
	"regexp"
)

// ErrorType is the stable failure category recorded per healpix in the run
// summary and the YAML report.
type ErrorType string

const (
	TypeMissingCoadd ErrorType = "missing-coadd" // Coadd file absent or unreadable.
	TypeCorruptFits  ErrorType = "corrupt-fits"  // FITS read/verify failure.
	TypeOutOfMemory  ErrorType = "out-of-memory" // Finder ran out of memory or was OOM-killed.
	TypeInterrupted  ErrorType = "interrupted"   // Run cancelled while the finder was active.
	TypeFinderExit   ErrorType = "finder-exit"   // Finder failed for an unclassified reason.
	TypeUnknown      ErrorType = "unknown"       // Error did not come from the finder wrapper.
)

// Pre-compiled regexes for classifying finder stderr into error categories.
// Checked in order by [Classify]; the first match wins. The patterns cover
// both Python traceback class names (the finder is a Python tool) and the
// plain-text messages some of its dependencies emit.
var (
	reMissingCoadd = regexp.MustCompile(
		`(?i)FileNotFoundError|No such file or directory|` +
			`could not find (the )?coadd|coadd file .* (not found|does not exist)`)

	reCorruptFits = regexp.MustCompile(
		`(?i)OSError: .*FITS|fitsio.*error|astropy\.io\.fits.*error|` +
			`Empty or corrupt FITS file|Header missing END card|` +
			`not a valid FITS file`)

	reOutOfMemory = regexp.MustCompile(
		`(?i)MemoryError|Out of memory|Cannot allocate memory|OOM[- ]?killed`)
)

// Classify maps a failed finder invocation to an [ErrorType]. Cancellation
// takes precedence over stderr content.
func Classify(ctx context.Context, stderr string) ErrorType {
	if ctx.Err() != nil {
		return TypeInterrupted
	}
	switch {
	case reMissingCoadd.MatchString(stderr):
		return TypeMissingCoadd
	case reCorruptFits.MatchString(stderr):
		return TypeCorruptFits
	case reOutOfMemory.MatchString(stderr):
		return TypeOutOfMemory
	}
	return TypeFinderExit
}

// TypeOf extracts the error category from any error returned by a [Finder].
// Errors that are not classified finder failures report TypeUnknown, so the
// summary still has something to print for injected test doubles and
// unexpected failures.
func TypeOf(err error) ErrorType {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Type
	}
	return TypeUnknown
}
