// Package cli provides the Cobra command structure for langmark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root langmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "langmark",
		Short: "Convert langmark documents to HTML",
		Long: `langmark converts documents written in the langmark markup language to HTML.

Convert one file with "langmark html", a whole tree with "langmark build",
or look at how a document parses with "langmark inspect". Markdown files can
join a build through goldmark so mixed documentation trees convert in one pass.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globals.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(usageFlagError)

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newHTMLCommand(globals))
	rootCmd.AddCommand(newBuildCommand(globals))
	rootCmd.AddCommand(newInspectCommand(globals))
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
