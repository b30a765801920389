package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/langmark/internal/configloader"
	"github.com/yaklabco/langmark/pkg/config"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration langmark would use in this directory, as YAML.

The output merges the defaults, user and project config files, the file given
with --config, and LANGMARK_* environment variables. The files that were read
are listed in the header comment.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return runConfig(cmd, globals)
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list supported environment variables instead")

	return cmd
}

func runConfig(cmd *cobra.Command, globals *globalFlags) error {
	sess, err := loadSession(cmd, globals, nil)
	if err != nil {
		return err
	}

	header := "# Effective langmark configuration"
	if len(sess.loaded) == 0 {
		header += "\n# Sources: defaults only"
	}
	for _, path := range sess.loaded {
		header += "\n# Source: " + path
	}

	body, err := sess.cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	data, err := annotateEnv(body)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	data = append([]byte(header+"\n\n"), data...)

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s  %s\n", rpad(v.Name, width), v.Help)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), sb.String()); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}

// annotateEnv marks every key that a LANGMARK_* variable can override with
// a line comment naming the variable.
func annotateEnv(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for _, root := range doc.Content {
		commentKeys(root, "")
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(config.YAMLIndent())
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out.Bytes(), nil
}

func commentKeys(n *yaml.Node, prefix string) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + path
		}
		if name := configloader.EnvVarFor(path); name != "" {
			key.LineComment = "$" + name
		}
		commentKeys(value, path)
	}
}
