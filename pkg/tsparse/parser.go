// Package tsparse parses TypeScript sources into the small set of decorated
// declarations the example generator needs.
//
// The syntax tree comes from tree-sitter's TypeScript grammar, which also
// decides validity: a tree with ERROR or MISSING nodes is a syntax error.
// When the syntax check is enabled, such errors are reported with esbuild's
// diagnostic instead, which names the problem more precisely.
package tsparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tree-sitter node types.
const (
	nodeClassDeclaration         = "class_declaration"
	nodeAbstractClassDeclaration = "abstract_class_declaration"
	nodeClassExpression          = "class"
	nodeExportStatement          = "export_statement"
	nodePublicFieldDefinition    = "public_field_definition"
	nodeFieldDefinition          = "field_definition"
	nodeDecorator                = "decorator"
	nodeCallExpression           = "call_expression"
	nodeComment                  = "comment"
	nodeError                    = "ERROR"
)

// Parser parses TypeScript source files.
// A Parser is safe for concurrent use; each call creates its own tree-sitter parser.
type Parser struct {
	syntaxCheck bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithSyntaxCheck toggles esbuild diagnostics for sources tree-sitter
// rejects. It is on by default.
func WithSyntaxCheck(enabled bool) Option {
	return func(p *Parser) {
		p.syntaxCheck = enabled
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{syntaxCheck: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src and collects its decorated class and property
// declarations in pre-order. Syntax errors are returned as *SyntaxError.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())

	tree, err := ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned no root node for %s", path)
	}
	if root.HasError() {
		// esbuild also rejects valid code (redeclarations, decorated class
		// expressions), so it only describes errors the tree already has
		if p.syntaxCheck {
			if err := CheckSyntax(path, src); err != nil {
				return nil, err
			}
		}
		return nil, firstTreeError(path, root, src)
	}

	w := &walker{src: src, file: &File{Path: path}}
	w.visit(root)
	return w.file, nil
}

// firstTreeError reports the first ERROR or MISSING node in pre-order.
func firstTreeError(path string, root *sitter.Node, src []byte) *SyntaxError {
	var found *sitter.Node
	var find func(n *sitter.Node)
	find = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == nodeError || n.IsMissing() {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			find(n.Child(i))
		}
	}
	find(root)

	if found == nil {
		return &SyntaxError{File: path, Pos: Position{Line: 1, Column: 1}, Message: "source contains syntax errors"}
	}

	msg := fmt.Sprintf(errMissingNode, found.Type())
	if !found.IsMissing() {
		text := found.Content(src)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		msg = fmt.Sprintf(errUnexpectedSyntax, text)
	}
	return &SyntaxError{File: path, Pos: nodePosition(found), Message: msg}
}

// walker performs the pre-order traversal.
type walker struct {
	src  []byte
	file *File
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.src)
}

// visit records n if it is a decorated class or property, then recurses
// into every named child regardless of whether n matched.
func (w *walker) visit(n *sitter.Node) {
	switch n.Type() {
	case nodeClassDeclaration, nodeAbstractClassDeclaration:
		w.class(n)
	case nodeClassExpression:
		// `export default class {}` is a declaration even though the grammar
		// parses the anonymous class as an expression.
		if parent := n.Parent(); parent != nil && parent.Type() == nodeExportStatement {
			w.class(n)
		}
	case nodePublicFieldDefinition, nodeFieldDefinition:
		w.property(n)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil {
			w.visit(child)
		}
	}
}

func (w *walker) class(n *sitter.Node) {
	var decorators []Decorator
	// Decorators written before `export` hang off the export statement.
	if parent := n.Parent(); parent != nil && parent.Type() == nodeExportStatement {
		decorators = append(decorators, w.childDecorators(parent)...)
	}
	decorators = append(decorators, w.childDecorators(n)...)
	if len(decorators) == 0 {
		return
	}

	decl := ClassDecl{Decorators: decorators, Pos: nodePosition(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = w.text(name)
	}
	w.file.Classes = append(w.file.Classes, decl)
}

func (w *walker) property(n *sitter.Node) {
	decorators := w.siblingDecorators(n)
	decorators = append(decorators, w.childDecorators(n)...)
	if len(decorators) == 0 {
		return
	}

	decl := PropertyDecl{Decorators: decorators, Pos: nodePosition(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = w.text(name)
	}
	if ann := n.ChildByFieldName("type"); ann != nil {
		t := w.typeText(ann)
		decl.Type = &t
	}
	if value := n.ChildByFieldName("value"); value != nil {
		v := w.text(value)
		decl.Initializer = &v
	}
	w.file.Properties = append(w.file.Properties, decl)
}

// typeText renders a type annotation without its leading colon.
func (w *walker) typeText(ann *sitter.Node) string {
	for i := 0; i < int(ann.NamedChildCount()); i++ {
		if child := ann.NamedChild(i); child != nil && child.Type() != nodeComment {
			return w.text(child)
		}
	}
	return strings.TrimSpace(strings.TrimPrefix(w.text(ann), ":"))
}

// childDecorators returns the decorator children of n in source order.
func (w *walker) childDecorators(n *sitter.Node) []Decorator {
	var out []Decorator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == nodeDecorator {
			out = append(out, w.decorator(child))
		}
	}
	return out
}

// siblingDecorators returns decorators placed directly before n in its
// parent, which is where some grammar versions put member decorators.
func (w *walker) siblingDecorators(n *sitter.Node) []Decorator {
	var nodes []*sitter.Node
	for prev := n.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		if prev.Type() == nodeComment {
			continue
		}
		if prev.Type() != nodeDecorator {
			break
		}
		nodes = append(nodes, prev)
	}

	out := make([]Decorator, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		out = append(out, w.decorator(nodes[i]))
	}
	return out
}

func (w *walker) decorator(n *sitter.Node) Decorator {
	d := Decorator{Pos: nodePosition(n)}

	expr := firstNamed(n)
	if expr == nil {
		return d
	}
	if expr.Type() != nodeCallExpression {
		d.Callee = w.text(expr)
		return d
	}

	d.Call = true
	if fn := expr.ChildByFieldName("function"); fn != nil {
		d.Callee = w.text(fn)
	}
	if args := expr.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg == nil || arg.Type() == nodeComment {
				continue
			}
			d.Args = append(d.Args, w.value(arg))
		}
	}
	return d
}

func (w *walker) value(n *sitter.Node) Value {
	v := Value{Kind: ValueOther, Text: w.text(n)}

	switch n.Type() {
	case "string":
		v.Kind = ValueString
		v.Str = unquote(v.Text)
	case "template_string":
		if !hasChildOfType(n, "template_substitution") {
			v.Kind = ValueString
			v.Str = unquote(v.Text)
		}
	case "true":
		v.Kind = ValueTrue
	case "false":
		v.Kind = ValueFalse
	case "object":
		v.Kind = ValueObject
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == nil || child.Type() != "pair" {
				continue
			}
			key := child.ChildByFieldName("key")
			val := child.ChildByFieldName("value")
			if key == nil || val == nil {
				continue
			}
			v.Props = append(v.Props, Prop{Key: w.text(key), Value: w.value(val)})
		}
	}
	return v
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() != nodeComment {
			return child
		}
	}
	return nil
}

func hasChildOfType(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() == typ {
			return true
		}
	}
	return false
}
