package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/logging"
	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/fsutil"
	"github.com/yaklabco/langmark/pkg/grammar"
)

// defaultConfigName is the project config file init creates.
const defaultConfigName = ".langmark.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a langmark configuration file",
		Long: `Create a new .langmark.yml configuration file in the current directory
with the default settings. Edit it to change the grammar, the file extensions
a build picks up, and where outputs are written.

Examples:
  langmark init                      Create a commented .langmark.yml
  langmark init --full               Write every setting and list element names
  langmark init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting and the known element names")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Interactive(cmd.ErrOrStderr())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Elements: grammar.Names(),
	})

	if err := fsutil.WriteOutput(cmd.Context(), absPath, content); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'langmark config' to see the effective settings")

	return nil
}
