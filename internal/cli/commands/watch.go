package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mekor-lib/sampler/internal/engine"
	"github.com/mekor-lib/sampler/internal/preview"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate examples when components change",
		Long: `Generate once, then watch the source directory and regenerate whenever a
component file changes. Regeneration errors are reported and watching
continues.

With --serve the output directory is served over HTTP and open pages
reload after each successful regeneration.`,
		Example: `  # Watch and regenerate
  sampler watch

  # Watch and preview at http://localhost:8770
  sampler watch --serve

  # Pick a port
  sampler watch --serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}

	cmd.Flags().Bool("serve", false, "Serve the output directory with live reload")
	cmd.Flags().Int("port", 0, "Preview server port (default from preview.port)")

	return cmd
}

func runWatch(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	cfg := cmdCtx.Cfg
	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	serve, _ := cmd.Flags().GetBool("serve")
	port := cfg.Preview.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}

	eng, err := createEngine(cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	result, err := eng.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("initial generation failed: %w", err)
	}
	if err := renderResult(r, result); err != nil {
		return err
	}

	srv := preview.NewServer(preview.Config{
		Generator: eng,
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		Suffix:    cfg.Suffix,
		Debounce:  cfg.Preview.Debounce,
		Port:      port,
		Serve:     serve,
		Logger:    cmdCtx.Logger,
		OnGenerate: func(result *engine.Result, err error) {
			if err != nil {
				r.Error(err.Error())
				return
			}
			r.Success(fmt.Sprintf("Regenerated %d %s", len(result.Components), plural(len(result.Components), "example", "examples")))
		},
	})

	r.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", cfg.SourceDir))
	return srv.Run(cmd.Context())
}
