package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/configloader"
	"github.com/yaklabco/langmark/pkg/convert"
	"github.com/yaklabco/langmark/pkg/fsutil"
	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/runner"
)

// Exit codes for langmark, following sysexits(3) where one applies.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitBuildFailed indicates a build ran but some files failed.
	ExitBuildFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitNoInput indicates a named input file does not exist.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks errors caused by how the command was invoked.
	ErrUsage = errors.New("invalid usage")

	// ErrBuildFailed is returned when a build finished with failed files.
	// The failures have already been reported.
	ErrBuildFailed = errors.New("build failed")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBuildFailed):
		return ExitBuildFailed
	case errors.Is(err, ErrUsage), strings.HasPrefix(err.Error(), "unknown command"):
		return ExitInvalidUsage
	case configloader.IsValidationError(err),
		errors.Is(err, grammar.ErrConflict),
		errors.Is(err, convert.ErrExtensionConflict),
		strings.HasPrefix(err.Error(), "load configuration"):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound):
		return ExitNoInput
	case errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, runner.ErrOutputIsSource),
		isPathError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code for a finished build.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitBuildFailed
	}
	return ExitSuccess
}

func isPathError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

// usageArgs wraps a positional argument validator so its failures map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Join(ErrUsage, err)
		}
		return nil
	}
}

// usageFlagError wraps flag parsing errors so they map to ExitInvalidUsage.
func usageFlagError(_ *cobra.Command, err error) error {
	return errors.Join(ErrUsage, err)
}
