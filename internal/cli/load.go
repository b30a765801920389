package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/configloader"
	"github.com/yaklabco/langmark/internal/logging"
	"github.com/yaklabco/langmark/pkg/config"
)

// grammarFlags are the grammar overrides accepted by html, build and inspect.
type grammarFlags struct {
	tabWidth  int
	markLimit int
	disable   []string
}

func addGrammarFlags(cmd *cobra.Command, flags *grammarFlags) {
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "distance between tab stops (default from config)")
	cmd.Flags().IntVar(&flags.markLimit, "mark-limit", 0, "longest run of an inline mark (default from config)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "element names to switch off")
}

// apply copies the flags that were set onto cli.
func (f *grammarFlags) apply(cmd *cobra.Command, cli *config.Config) {
	if cmd.Flags().Changed("tab-width") {
		cli.Grammar.TabWidth = f.tabWidth
	}
	if cmd.Flags().Changed("mark-limit") {
		cli.Grammar.MarkLimit = f.markLimit
	}
	if cmd.Flags().Changed("disable") {
		cli.Grammar.Disable = f.disable
	}
}

// session is the resolved state a command runs with.
type session struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
	loaded  []string
}

// log returns the logger carried by the session context.
func (s *session) log() *log.Logger {
	return logging.FromContext(s.ctx)
}

// loadSession resolves the effective configuration for cmd. cli carries
// the values set by command flags and may be nil.
func loadSession(cmd *cobra.Command, globals *globalFlags, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		Dir:       workDir,
		File:      globals.configPath,
		Overrides: cli,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.Sources) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.Sources)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		logging.FieldTabWidth, cfg.Grammar.TabWidth,
		logging.FieldMarkLimit, cfg.Grammar.MarkLimit,
		logging.FieldDisabled, cfg.Grammar.Disable,
		logging.FieldFlavor, cfg.Input.MarkdownFlavor,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		workDir: workDir,
		cfg:     cfg,
		loaded:  loadResult.Sources,
	}, nil
}
