package examples

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mekor-lib/sampler/pkg/component"
)

// Written records the files produced for one component.
type Written struct {
	HTMLPath   string
	ScriptPath string
}

// Writer writes pages into an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Paths returns where the files for name are written.
func (w *Writer) Paths(name string) Written {
	return Written{
		HTMLPath:   filepath.Join(w.dir, name+HTMLExt),
		ScriptPath: filepath.Join(w.dir, name+ScriptExt),
	}
}

// Generate renders and writes the page for a component.
func (w *Writer) Generate(name string, md *component.Metadata) (Written, error) {
	return w.Write(Render(name, md))
}

// Write stores a rendered page. The directory is created when missing and
// the HTML file is written before the script. Existing files are replaced.
func (w *Writer) Write(page Page) (Written, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return Written{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := w.Paths(page.Name)
	if err := os.WriteFile(paths.HTMLPath, []byte(page.HTML), 0600); err != nil {
		return Written{}, fmt.Errorf("failed to write %s: %w", filepath.Base(paths.HTMLPath), err)
	}
	if err := os.WriteFile(paths.ScriptPath, []byte(page.Script), 0600); err != nil {
		return Written{}, fmt.Errorf("failed to write %s: %w", filepath.Base(paths.ScriptPath), err)
	}

	return paths, nil
}
