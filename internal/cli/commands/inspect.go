package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mekor-lib/sampler/internal/cli/output"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the metadata extracted from one component file",
		Long: `Parse a single TypeScript file and print the component metadata that
generate would use for it. JSON by default; --output yaml prints YAML.`,
		Example: `  sampler inspect src/app/button/button.component.ts
  sampler inspect button.component.ts -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}

	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	md, err := cmdCtx.Engine.Inspect(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if cmdCtx.Renderer.Mode() == output.ModeYAML {
		return cmdCtx.Renderer.YAML(md)
	}
	return cmdCtx.Renderer.JSON(md)
}
