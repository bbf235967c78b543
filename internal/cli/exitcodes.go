package cli

import (
	"errors"

	"github.com/yaklabco/gomdparse/pkg/fsutil"
)

// Exit codes for gomdparse.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRenderFailed indicates at least one input could not be rendered.
	ExitRenderFailed = 1

	// ExitCheckFailed indicates an events check or cross-check found differences.
	ExitCheckFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

//nolint:gochecknoglobals // Sentinel errors.
var (
	// ErrRenderFailed signals that some inputs failed. Details were already reported.
	ErrRenderFailed = errors.New("render failed")

	// ErrCheckFailed signals a failed check. Details were already reported.
	ErrCheckFailed = errors.New("check failed")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid flag or argument combinations.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed):
		return ExitRenderFailed
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrFileTooLarge):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit code and its details
// were already written.
func IsReported(err error) bool {
	return errors.Is(err, ErrRenderFailed) || errors.Is(err, ErrCheckFailed)
}
