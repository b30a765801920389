package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/logging"
	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/convert"
	"github.com/yaklabco/langmark/pkg/reporter"
	"github.com/yaklabco/langmark/pkg/runner"
)

type buildFlags struct {
	grammar        grammarFlags
	outDir         string
	outExt         string
	dryRun         bool
	diff           bool
	jobs           int
	ignore         []string
	markdownExts   []string
	flavor         string
	format         string
	compact        bool
	verbose        bool
	followSymlinks bool
}

func newBuildCommand(globals *globalFlags) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Convert every document under the given paths",
		Long:  buildLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, globals, flags, args)
		},
	}

	addGrammarFlags(cmd, &flags.grammar)
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "mirror the source tree under this directory")
	cmd.Flags().StringVar(&flags.outExt, "out-ext", "", "extension of generated files (default .html)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing any file")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show how each output changes")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.markdownExts, "markdown-ext", nil, "extensions converted as markdown")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, json, summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged files too")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

const buildLongDescription = `Convert every langmark document under the given paths to HTML.

By default, converts all .lm and .langmark files in the current directory
and subdirectories, writing each output next to its source. Hidden files and
directories are skipped unless named explicitly. Outputs whose content did
not change are left untouched.

Examples:
  langmark build                       # Convert the current directory
  langmark build docs/ --out-dir site  # Mirror docs/ under site/
  langmark build --dry-run             # Show what would be written
  langmark build --dry-run --diff      # Show how each output would change
  langmark build --markdown-ext .md    # Convert markdown files as well
  langmark build --format json         # Machine-readable report`

func runBuild(cmd *cobra.Command, globals *globalFlags, flags *buildFlags, args []string) error {
	cli := &config.Config{
		Ignore: flags.ignore,
		Jobs:   flags.jobs,
		DryRun: flags.dryRun,
	}
	if cmd.Flags().Changed("format") {
		cli.Format = config.OutputFormat(flags.format)
	}
	flags.grammar.apply(cmd, cli)
	cli.Output.Dir = flags.outDir
	cli.Output.Extension = flags.outExt
	cli.Input.MarkdownExtensions = flags.markdownExts
	cli.Input.MarkdownFlavor = config.Flavor(flags.flavor)

	sess, err := loadSession(cmd, globals, cli)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	set, err := convert.FromConfig(cfg, sess.log())
	if err != nil {
		return err
	}

	opts := runner.Options{
		Paths:          args,
		WorkingDir:     sess.workDir,
		Extensions:     set.Extensions(),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		OutDir:         cfg.Output.Dir,
		OutExt:         cfg.Output.Extension,
		DryRun:         cfg.DryRun,
		Diff:           flags.diff,
	}

	sess.log().Debug("starting build",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldDryRun, opts.DryRun,
	)

	result, err := runner.New(set, sess.log()).Run(sess.ctx, opts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	sess.log().Debug("build finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     cfg.Format,
		Color:      globals.color,
		Compact:    flags.compact,
		Verbose:    flags.verbose,
		WorkingDir: sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(sess.ctx, result); err != nil {
		sess.log().Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrBuildFailed
	}
	return nil
}
