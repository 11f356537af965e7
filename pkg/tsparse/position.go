package tsparse

import (
	"bytes"

	sitter "github.com/smacker/go-tree-sitter"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number (bytes)
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// nodePosition converts a tree-sitter start point into a Position.
func nodePosition(n *sitter.Node) Position {
	pt := n.StartPoint()
	return Position{
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
		Offset: int(n.StartByte()),
	}
}

// offsetOf returns the byte offset of a 1-based line and 0-based column.
// It returns -1 if the line does not exist.
func offsetOf(src []byte, line, col int) int {
	if line < 1 {
		return -1
	}
	start := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(src[start:], '\n')
		if i < 0 {
			return -1
		}
		start += i + 1
	}
	return min(start+col, len(src))
}
