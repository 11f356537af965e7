package tsparse

import (
	"github.com/evanw/esbuild/pkg/api"
)

// tsconfigRaw enables legacy decorators so property and parameter
// decorators (`@Input() label = ''`) are accepted by the TypeScript loader.
const tsconfigRaw = `{"compilerOptions":{"experimentalDecorators":true}}`

// CheckSyntax runs esbuild's TypeScript parser over src and returns a
// *SyntaxError for the first reported error, or nil if esbuild accepts src.
// The transformed output is discarded.
func CheckSyntax(path string, src []byte) error {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:      api.LoaderTS,
		Sourcefile:  path,
		TsconfigRaw: tsconfigRaw,
		LogLevel:    api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	first := result.Errors[0]
	serr := &SyntaxError{
		File:    path,
		Message: first.Text,
		More:    len(result.Errors) - 1,
	}
	if loc := first.Location; loc != nil {
		serr.Pos = Position{
			Line:   loc.Line,
			Column: loc.Column + 1,
			Offset: offsetOf(src, loc.Line, loc.Column),
		}
	}
	return serr
}
