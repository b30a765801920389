// Package main is the entry point for the langmark CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/langmark/internal/cli"
	"github.com/yaklabco/langmark/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	logging.SetDefault(logging.New(logging.Options{Writer: os.Stderr, Prefix: "langmark"}))

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// A failed build has already been reported file by file.
		if !errors.Is(err, cli.ErrBuildFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
