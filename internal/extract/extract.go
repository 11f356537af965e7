// Package extract builds component metadata from decorated TypeScript declarations.
package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/mekor-lib/sampler/pkg/component"
	"github.com/mekor-lib/sampler/pkg/tsparse"
)

// Default decorator names.
const (
	DefaultDeclarationMarker = "Component"
	DefaultInputMarker       = "Input"
)

// Markers are the decorator callee names the extractor matches exactly.
type Markers struct {
	// Declaration marks a class as a component definition.
	Declaration string
	// Input marks a property as a bindable input.
	Input string
}

// DefaultMarkers returns the Angular decorator names.
func DefaultMarkers() Markers {
	return Markers{
		Declaration: DefaultDeclarationMarker,
		Input:       DefaultInputMarker,
	}
}

// Extractor turns source files into component metadata.
type Extractor struct {
	parser  *tsparse.Parser
	markers Markers
}

// New creates an Extractor. A nil parser gets tsparse defaults.
func New(parser *tsparse.Parser, markers Markers) *Extractor {
	if parser == nil {
		parser = tsparse.New()
	}
	return &Extractor{parser: parser, markers: markers}
}

// ExtractFile reads path and extracts its metadata.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*component.Metadata, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, path, src)
}

// Extract parses src and extracts its metadata. Syntax errors are returned
// as *tsparse.SyntaxError.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (*component.Metadata, error) {
	f, err := e.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	return FromFile(f, e.markers), nil
}

// ReadSource loads a source file's text.
func ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the directory walk or the user
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return src, nil
}

// FromFile applies the marker rules to parsed declarations.
// Later matches overwrite selector and standalone.
func FromFile(f *tsparse.File, markers Markers) *component.Metadata {
	md := component.New()

	for _, cls := range f.Classes {
		for _, dec := range cls.Decorators {
			if !dec.Call || dec.Callee != markers.Declaration || len(dec.Args) == 0 {
				continue
			}
			applyDeclaration(md, dec.Args[0])
		}
	}

	for _, prop := range f.Properties {
		for _, dec := range prop.Decorators {
			if !dec.Call || dec.Callee != markers.Input {
				continue
			}
			md.Inputs = append(md.Inputs, component.Input{
				Name:         prop.Name,
				Type:         copyText(prop.Type),
				DefaultValue: copyText(prop.Initializer),
			})
		}
	}

	return md
}

func applyDeclaration(md *component.Metadata, arg tsparse.Value) {
	if arg.Kind != tsparse.ValueObject {
		return
	}
	for _, prop := range arg.Props {
		switch prop.Key {
		case "selector":
			if prop.Value.Kind == tsparse.ValueString {
				md.Selector = prop.Value.Str
			}
		case "standalone":
			md.Standalone = prop.Value.Kind == tsparse.ValueTrue
		}
	}
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	return component.Text(*s)
}
