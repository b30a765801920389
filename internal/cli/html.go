package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langmark/internal/logging"
	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/convert"
	"github.com/yaklabco/langmark/pkg/fsutil"
	"github.com/yaklabco/langmark/pkg/parser"
)

// stdinSource names standard input on the command line.
const stdinSource = "-"

type htmlFlags struct {
	grammar grammarFlags
	output  string
}

func newHTMLCommand(globals *globalFlags) *cobra.Command {
	flags := &htmlFlags{}

	cmd := &cobra.Command{
		Use:   "html <source>",
		Short: "Print the HTML for one document",
		Long: `Convert a single document and print the HTML to standard output.

The converter is chosen by file extension, so configured markdown extensions
go through the markdown renderer. Standard input and unknown extensions are
read as langmark.

Examples:
  langmark html notes.lm              Print HTML for notes.lm
  langmark html - < notes.lm          Read the document from stdin
  langmark html notes.lm -o out.html  Write to a file instead
  langmark html --disable strong x.lm Treat * as plain text`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, globals, flags, args[0])
		},
	}

	addGrammarFlags(cmd, &flags.grammar)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")

	return cmd
}

func runHTML(cmd *cobra.Command, globals *globalFlags, flags *htmlFlags, source string) error {
	cli := &config.Config{}
	flags.grammar.apply(cmd, cli)

	sess, err := loadSession(cmd, globals, cli)
	if err != nil {
		return err
	}

	set, err := convert.FromConfig(sess.cfg, sess.log())
	if err != nil {
		return err
	}

	src, err := readSource(cmd, sess, source)
	if err != nil {
		return err
	}

	conv, ok := set.Lookup(source)
	if source == stdinSource || !ok {
		conv, err = langmarkConverter(sess)
		if err != nil {
			return err
		}
	}

	out, err := conv.Convert(sess.ctx, src)
	if err != nil {
		return fmt.Errorf("convert %s: %w", source, err)
	}
	sess.log().Debug("converted",
		logging.FieldInput, source,
		logging.FieldConverter, conv.Name(),
		logging.FieldBytes, len(out),
	)

	if flags.output != "" {
		if err := fsutil.WriteOutput(sess.ctx, flags.output, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// readSource reads a file, or standard input for "-".
func readSource(cmd *cobra.Command, sess *session, source string) ([]byte, error) {
	if source == stdinSource {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}

	src, err := fsutil.ReadSource(sess.ctx, source)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// langmarkConverter builds a langmark converter for the session grammar.
func langmarkConverter(sess *session) (*convert.Langmark, error) {
	g, err := convert.Grammar(sess.cfg.Grammar)
	if err != nil {
		return nil, err
	}
	return convert.NewLangmark(parser.New(parser.WithGrammar(g), parser.WithLogger(sess.log()))), nil
}
