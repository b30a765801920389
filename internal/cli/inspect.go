package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/langmark/internal/ui/pretty"
	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/header"
	"github.com/yaklabco/langmark/pkg/langdetect"
	"github.com/yaklabco/langmark/pkg/lmast"
)

// Formats accepted by inspect --format.
const (
	inspectText = "text"
	inspectYAML = "yaml"
)

type inspectFlags struct {
	grammar grammarFlags
	format  string
	inlines bool
	width   int
}

func newInspectCommand(globals *globalFlags) *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Show how a document parses",
		Long: `Parse a langmark document and print its tree.

Block elements are shown with their columns and attributes. Code blocks are
labelled with a guessed language. Use --inlines to expand inline elements and
--format yaml for output other tools can read.

Examples:
  langmark inspect notes.lm
  langmark inspect notes.lm --inlines
  langmark inspect - --format yaml < notes.lm`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, globals, flags, args[0])
		},
	}

	addGrammarFlags(cmd, &flags.grammar)
	cmd.Flags().StringVar(&flags.format, "format", inspectText, "output format: text, yaml")
	cmd.Flags().BoolVar(&flags.inlines, "inlines", false, "include inline elements")
	cmd.Flags().IntVar(&flags.width, "width", 0, "maximum line width (default: terminal width)")

	return cmd
}

// inspection is the YAML form of an inspected document.
type inspection struct {
	Header *header.Header  `yaml:"header,omitempty"`
	Links  []inspectedLink `yaml:"links,omitempty"`
	Tree   *lmast.Outline  `yaml:"tree"`
}

type inspectedLink struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Title string `yaml:"title,omitempty"`
}

func runInspect(cmd *cobra.Command, globals *globalFlags, flags *inspectFlags, source string) error {
	if flags.format != inspectText && flags.format != inspectYAML {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, yaml", ErrUsage, flags.format)
	}

	cli := &config.Config{}
	flags.grammar.apply(cmd, cli)

	sess, err := loadSession(cmd, globals, cli)
	if err != nil {
		return err
	}

	conv, err := langmarkConverter(sess)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, sess, source)
	if err != nil {
		return err
	}

	doc, err := conv.Parse(sess.ctx, src)
	if err != nil {
		return err
	}

	report := newInspection(doc, flags.inlines)
	out := cmd.OutOrStdout()

	if flags.format == inspectYAML {
		return writeInspectionYAML(out, report)
	}

	width := flags.width
	if width <= 0 {
		width = pretty.TerminalWidth(out)
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
	return writeInspectionText(out, styles, report, width)
}

func newInspection(doc *lmast.Document, inlines bool) *inspection {
	report := &inspection{Tree: lmast.NewOutline(doc.Root, inlines)}
	if doc.Header.Len() > 0 {
		report.Header = doc.Header
	}
	for _, id := range doc.Links.IDs() {
		def, _ := doc.Links.Resolve(id)
		report.Links = append(report.Links, inspectedLink{ID: id, URL: def.URL, Title: def.Title})
	}
	labelCode(doc.Root, report.Tree)
	return report
}

// labelCode tags every code block in the outline with the language its
// content looks like.
func labelCode(root *lmast.Node, tree *lmast.Outline) {
	for _, code := range lmast.FindByKind(root, lmast.NodeCodeBlock) {
		entry := tree.Entry(code)
		if entry == nil {
			continue
		}
		text := entry.Text
		if text == "" {
			text = lmast.PlainText(code)
		}
		if lang := langdetect.Detect([]byte(text)); lang != langdetect.Text {
			entry.SetAttr("language", lang)
		}
	}
}

func writeInspectionYAML(w io.Writer, report *inspection) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(config.YAMLIndent())
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

func writeInspectionText(w io.Writer, styles *pretty.Styles, report *inspection, width int) error {
	var sb strings.Builder

	if report.Header != nil {
		sb.WriteString(styles.SummaryTitle.Render("Header"))
		sb.WriteString("\n")
		for _, e := range report.Header.Entries() {
			fmt.Fprintf(&sb, "  %s", styles.Attr.Render(e.Key))
			if e.HasValue {
				fmt.Fprintf(&sb, " %s", e.Value)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(report.Links) > 0 {
		sb.WriteString(styles.SummaryTitle.Render("Links"))
		sb.WriteString("\n")
		for _, link := range report.Links {
			fmt.Fprintf(&sb, "  %s %s %s", styles.Attr.Render(link.ID), styles.Arrow.Render("->"), link.URL)
			if link.Title != "" {
				fmt.Fprintf(&sb, " %s", styles.Dim.Render(fmt.Sprintf("%q", link.Title)))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.FormatTree(report.Tree, width))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
