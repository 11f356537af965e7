package tsparse

import "fmt"

// SyntaxError reports TypeScript source that could not be parsed.
type SyntaxError struct {
	File    string
	Pos     Position
	Message string
	// More is the number of additional errors reported after this one.
	More int
}

// Error renders file:line:col: message, or file: message without a position.
func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.File, e.Message)
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	if e.More > 0 {
		msg += fmt.Sprintf(" (and %d more)", e.More)
	}
	return msg
}

// Common error messages
const (
	errUnexpectedSyntax = "unexpected %q"
	errMissingNode      = "missing %s"
)
