package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mekor-lib/sampler/internal/cli/output"
	"github.com/mekor-lib/sampler/internal/engine"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered components",
		Long: `List every component under the source directory with its selector,
standalone flag and input count. Nothing is written.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # List components
  sampler list

  # List components as JSON
  sampler list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	if err := cmdCtx.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}

	components, err := eng.Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to discover components: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.Mode() {
	case output.ModeJSON:
		return r.JSON(components)
	case output.ModeYAML:
		return r.YAML(components)
	}

	if len(components) == 0 {
		r.Muted(fmt.Sprintf("No %s files found in %s", eng.Suffix(), eng.SourceDir()))
		return nil
	}

	if r.Mode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Components"))
		r.Println("")
	}
	r.Table([]string{"Component", "Name", "Selector", "Standalone", "Inputs", "Source"}, listRows(eng, components))
	if r.Mode() == output.ModeText {
		r.Muted(fmt.Sprintf("%d %s", len(components), plural(len(components), "component", "components")))
	}
	return nil
}

func listRows(eng *engine.Engine, components []engine.Component) [][]string {
	rows := make([][]string, 0, len(components))
	for _, c := range components {
		rows = append(rows, []string{
			DisplayName(c.Name),
			c.Name,
			c.Metadata.Selector,
			strconv.FormatBool(c.Metadata.Standalone),
			strconv.Itoa(len(c.Metadata.Inputs)),
			relPath(eng.SourceDir(), c.Source),
		})
	}
	return rows
}

// DisplayName turns a component file name like "date-picker" into "Date Picker".
func DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
