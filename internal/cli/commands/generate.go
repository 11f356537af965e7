package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mekor-lib/sampler/internal/cli/output"
	"github.com/mekor-lib/sampler/internal/engine"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate example pages for every component",
		Long: `Walk the source directory, extract component metadata from every
*.component.ts file and write <name>.html and <name>.js into the output
directory.

Any parse or filesystem error stops the run.`,
		Example: `  # Generate examples using sampler.yaml
  sampler generate

  # Generate from an explicit tree
  sampler generate --source-dir src/app --output-dir src/examples

  # Also write manifest.json
  sampler generate --manifest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	cmd.Flags().Bool("manifest", false, "Write manifest.json next to the examples")
	cmd.Flags().Bool("syntax-check", true, "Report syntax errors with esbuild diagnostics")

	return cmd
}

func runGenerate(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	// flags apply to this run only, not to the loaded configuration
	local := *cmdCtx.Cfg
	cfg := &local
	cmdCtx.Cfg = cfg
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest, _ = cmd.Flags().GetBool("manifest")
	}
	if cmd.Flags().Changed("syntax-check") {
		cfg.SyntaxCheck, _ = cmd.Flags().GetBool("syntax-check")
	}
	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	eng, err := createEngine(cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}

	result, err := eng.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return renderResult(cmdCtx.Renderer, result)
}

func renderResult(r *output.Renderer, result *engine.Result) error {
	switch r.Mode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeYAML:
		return r.YAML(result)
	case output.ModeMarkdown:
		return generateMarkdown(r, result)
	default:
		return generateText(r, result)
	}
}

func generateText(r *output.Renderer, result *engine.Result) error {
	styles := r.Styles()

	for _, c := range result.Components {
		selector := c.Metadata.Selector
		if selector == "" {
			selector = "(none)"
		}
		r.Printf("  %s %s %s\n",
			styles.Noun.Render(c.Name),
			styles.Selector.Render("<"+selector+">"),
			styles.Path.Render(relPath(result.OutputDir, c.HTMLPath)))
	}
	for _, w := range result.Warnings {
		r.Warning(w)
	}

	r.Success(fmt.Sprintf("Generated %d %s in %s",
		len(result.Components), plural(len(result.Components), "example", "examples"), result.OutputDir))
	if result.ManifestPath != "" {
		r.Muted("Manifest written to " + result.ManifestPath)
	}
	r.Muted(fmt.Sprintf("Run %s in %s", result.RunID, result.Duration.Round(time.Millisecond)))
	return nil
}

func generateMarkdown(r *output.Renderer, result *engine.Result) error {
	r.Println(output.FormatHeader(1, "Generated Examples"))
	r.Println("")
	r.Println(output.FormatKeyValue("Output", output.FormatCode(result.OutputDir)))
	r.Println(output.FormatKeyValue("Components", strconv.Itoa(len(result.Components))))
	r.Println(output.FormatKeyValue("Run", result.RunID))
	if result.ManifestPath != "" {
		r.Println(output.FormatKeyValue("Manifest", output.FormatCode(result.ManifestPath)))
	}

	if len(result.Components) > 0 {
		r.Println("")
		rows := make([][]string, 0, len(result.Components))
		for _, c := range result.Components {
			rows = append(rows, []string{
				c.Name,
				c.Metadata.Selector,
				strconv.Itoa(len(c.Metadata.Inputs)),
				relPath(result.OutputDir, c.HTMLPath),
				relPath(result.OutputDir, c.ScriptPath),
			})
		}
		r.Table([]string{"Component", "Selector", "Inputs", "HTML", "Script"}, rows)
	}

	if len(result.Warnings) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Warnings"))
		for _, w := range result.Warnings {
			r.Println("- " + w)
		}
	}
	return nil
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
