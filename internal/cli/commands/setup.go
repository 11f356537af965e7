package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mekor-lib/sampler/internal/cli/config"
	"github.com/mekor-lib/sampler/internal/cli/output"
	"github.com/mekor-lib/sampler/internal/engine"
	"github.com/mekor-lib/sampler/internal/extract"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Engine = eng

	return cmdCtx, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or the defaults when none
// was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	return engine.New(engine.Config{
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		Suffix:    cfg.Suffix,
		Markers: extract.Markers{
			Declaration: cfg.DeclarationMarker,
			Input:       cfg.InputMarker,
		},
		SyntaxCheck: cfg.SyntaxCheck,
		Manifest:    cfg.Manifest,
		Logger:      logger,
	})
}
