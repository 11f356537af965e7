package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
)

// Validation errors.
var (
	ErrEmptySourceDir = errors.New("source_dir is required")
	ErrEmptyOutputDir = errors.New("output_dir is required")
	ErrEmptySuffix    = errors.New("suffix is required")
	ErrEmptyMarker    = errors.New("declaration_marker and input_marker are required")
	ErrOutputMode     = errors.New("unknown output mode")
	ErrPreviewPort    = errors.New("preview.port must be between 0 and 65535")
)

// outputModes are the accepted values of the output key.
var outputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return ErrEmptySourceDir
	}
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}
	if c.Suffix == "" {
		return ErrEmptySuffix
	}
	if c.DeclarationMarker == "" || c.InputMarker == "" {
		return ErrEmptyMarker
	}
	if c.OutputFormat != "" && !slices.Contains(outputModes, c.OutputFormat) {
		return fmt.Errorf("%w: %q (expected one of %v)", ErrOutputMode, c.OutputFormat, outputModes)
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return ErrPreviewPort
	}
	return nil
}

// ValidateDirectories checks if the source directory exists.
func (c *Config) ValidateDirectories() error {
	info, err := os.Stat(c.SourceDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s\nHint: Create the directory or use --source-dir to specify a different path", c.SourceDir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", c.SourceDir)
	}
	return nil
}
