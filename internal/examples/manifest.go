package examples

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mekor-lib/sampler/pkg/component"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.json"

// Manifest describes one generation run.
type Manifest struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	SourceDir   string          `json:"source_dir"`
	Examples    []ManifestEntry `json:"examples"`
}

// ManifestEntry describes one generated example.
type ManifestEntry struct {
	Name       string            `json:"name"`
	Source     string            `json:"source"`
	HTML       string            `json:"html"`
	Script     string            `json:"script"`
	Selector   string            `json:"selector"`
	Standalone bool              `json:"standalone"`
	Inputs     []component.Input `json:"inputs"`
}

// WriteManifest stores m as indented JSON in the writer's directory.
func (w *Writer) WriteManifest(m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, ManifestFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the configured output directory
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
