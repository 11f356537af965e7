// Package engine runs the discover, extract and generate pipeline over a
// component source tree.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mekor-lib/sampler/internal/examples"
	"github.com/mekor-lib/sampler/internal/extract"
	"github.com/mekor-lib/sampler/internal/loader"
	"github.com/mekor-lib/sampler/pkg/component"
	"github.com/mekor-lib/sampler/pkg/tsparse"
)

// Configuration errors returned by New.
var (
	ErrNoSourceDir = errors.New("source directory is required")
	ErrNoOutputDir = errors.New("output directory is required")
)

// Engine generates example pages for every component under a source tree.
type Engine struct {
	logger    *slog.Logger
	sourceDir string
	manifest  bool

	scanner   *loader.Scanner
	extractor *extract.Extractor
	writer    *examples.Writer

	// serializes runs triggered by the watcher
	mu sync.Mutex
}

// Config holds engine configuration.
type Config struct {
	// SourceDir is the root of the component source tree
	SourceDir string
	// OutputDir receives the generated pages
	OutputDir string
	// Suffix selects component files (default ".component.ts")
	Suffix string
	// Markers are the decorator names to match (zero value uses the defaults)
	Markers extract.Markers
	// SyntaxCheck validates sources before extraction
	SyntaxCheck bool
	// Manifest writes manifest.json after a successful run
	Manifest bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.SourceDir == "" {
		return nil, ErrNoSourceDir
	}
	if cfg.OutputDir == "" {
		return nil, ErrNoOutputDir
	}

	markers := cfg.Markers
	if markers.Declaration == "" {
		markers.Declaration = extract.DefaultDeclarationMarker
	}
	if markers.Input == "" {
		markers.Input = extract.DefaultInputMarker
	}

	logger.Debug("initializing engine",
		"source_dir", cfg.SourceDir,
		"output_dir", cfg.OutputDir,
		"syntax_check", cfg.SyntaxCheck)

	return &Engine{
		logger:    logger,
		sourceDir: cfg.SourceDir,
		manifest:  cfg.Manifest,
		scanner:   loader.NewScanner(cfg.SourceDir, cfg.Suffix),
		extractor: extract.New(tsparse.New(tsparse.WithSyntaxCheck(cfg.SyntaxCheck)), markers),
		writer:    examples.NewWriter(cfg.OutputDir),
	}, nil
}

// SourceDir returns the root of the source tree.
func (e *Engine) SourceDir() string {
	return e.sourceDir
}

// OutputDir returns the output directory.
func (e *Engine) OutputDir() string {
	return e.writer.Dir()
}

// Suffix returns the component file suffix.
func (e *Engine) Suffix() string {
	return e.scanner.Suffix()
}

// Component is one processed component source.
type Component struct {
	Name       string              `json:"name"`
	Source     string              `json:"source"`
	HTMLPath   string              `json:"html,omitempty"`
	ScriptPath string              `json:"script,omitempty"`
	Metadata   *component.Metadata `json:"metadata"`
}

// Result summarizes a generation run.
type Result struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	OutputDir    string        `json:"output_dir"`
	Components   []Component   `json:"components"`
	Warnings     []string      `json:"warnings,omitempty"`
	ManifestPath string        `json:"manifest,omitempty"`
}

// Generate walks the source tree and writes an HTML page and a script for
// every component, one file at a time. The first error aborts the run;
// files already written stay on disk.
func (e *Engine) Generate(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &Result{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		OutputDir:  e.writer.Dir(),
		Components: []Component{},
	}
	logger := e.logger.With("run_id", result.RunID)
	logger.Debug("starting generation", "source_dir", e.sourceDir)

	written := make(map[string]string)

	err := e.scanner.Walk(ctx, func(src loader.Source) error {
		md, err := e.extractor.ExtractFile(ctx, src.Path)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", src.Path, err)
		}

		paths, err := e.writer.Generate(src.Name, md)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", src.Name, err)
		}

		switch {
		case md.IsEmpty():
			result.warn(logger, fmt.Sprintf("%s: no component or input decorators matched, page has an empty tag", src.Path))
		case md.Selector == "":
			result.warn(logger, fmt.Sprintf("%s: no selector found, page has an empty tag", src.Path))
		}
		if prev, ok := written[src.Name]; ok {
			result.warn(logger, fmt.Sprintf("%s: overwrote output of %s", src.Path, prev))
		}
		written[src.Name] = src.Path

		logger.Debug("generated example", "component", src.Name, "inputs", len(md.Inputs))

		result.Components = append(result.Components, Component{
			Name:       src.Name,
			Source:     src.Path,
			HTMLPath:   paths.HTMLPath,
			ScriptPath: paths.ScriptPath,
			Metadata:   md,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if e.manifest {
		path, err := e.writer.WriteManifest(result.manifest(e.sourceDir))
		if err != nil {
			return nil, err
		}
		result.ManifestPath = path
	}

	result.Duration = time.Since(result.StartedAt)
	logger.Info("generation complete",
		"components", len(result.Components),
		"warnings", len(result.Warnings),
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

// Discover extracts metadata for every component without writing anything.
func (e *Engine) Discover(ctx context.Context) ([]Component, error) {
	components := []Component{}
	err := e.scanner.Walk(ctx, func(src loader.Source) error {
		md, err := e.extractor.ExtractFile(ctx, src.Path)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", src.Path, err)
		}
		components = append(components, Component{Name: src.Name, Source: src.Path, Metadata: md})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Inspect extracts the metadata of a single file.
func (e *Engine) Inspect(ctx context.Context, path string) (*component.Metadata, error) {
	return e.extractor.ExtractFile(ctx, path)
}

func (r *Result) warn(logger *slog.Logger, msg string) {
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg)
}

func (r *Result) manifest(sourceDir string) *examples.Manifest {
	m := &examples.Manifest{
		RunID:       r.RunID,
		GeneratedAt: r.StartedAt.UTC(),
		SourceDir:   sourceDir,
		Examples:    make([]examples.ManifestEntry, 0, len(r.Components)),
	}
	for _, c := range r.Components {
		m.Examples = append(m.Examples, examples.ManifestEntry{
			Name:       c.Name,
			Source:     c.Source,
			HTML:       c.HTMLPath,
			Script:     c.ScriptPath,
			Selector:   c.Metadata.Selector,
			Standalone: c.Metadata.Standalone,
			Inputs:     c.Metadata.Inputs,
		})
	}
	return m
}
