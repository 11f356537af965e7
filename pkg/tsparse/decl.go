package tsparse

// ValueKind classifies an expression found in decorator arguments.
type ValueKind int

// Value kinds the extractor cares about. Everything else is ValueOther.
const (
	ValueOther ValueKind = iota
	ValueString
	ValueTrue
	ValueFalse
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueTrue:
		return "true"
	case ValueFalse:
		return "false"
	case ValueObject:
		return "object"
	default:
		return "other"
	}
}

// Value is an expression in a decorator argument list.
type Value struct {
	Kind ValueKind
	// Text is the source text of the expression.
	Text string
	// Str is the decoded literal for ValueString.
	Str string
	// Props holds the key/value properties of a ValueObject, in source order.
	Props []Prop
}

// Prop is one `key: value` property of an object literal.
// Shorthand properties, spreads and methods are not represented.
type Prop struct {
	// Key is the verbatim key text, so a quoted key keeps its quotes.
	Key   string
	Value Value
}

// Decorator is one `@expr` attached to a declaration.
type Decorator struct {
	// Callee is the text of the called expression for call decorators
	// (`Component` in `@Component({...})`), or the whole expression otherwise.
	Callee string
	// Call is true when the decorator expression is a call.
	Call bool
	Args []Value
	Pos  Position
}

// ClassDecl is a decorated class declaration.
type ClassDecl struct {
	// Name is empty for anonymous default-exported classes.
	Name       string
	Decorators []Decorator
	Pos        Position
}

// PropertyDecl is a decorated class property declaration.
type PropertyDecl struct {
	Name string
	// Type is the annotation text without the colon, nil when untyped.
	Type *string
	// Initializer is the initializer expression text, nil when absent.
	Initializer *string
	Decorators  []Decorator
	Pos         Position
}

// File is the decorated-declaration view of one parsed source file.
// Classes and Properties each preserve pre-order traversal order.
type File struct {
	Path       string
	Classes    []ClassDecl
	Properties []PropertyDecl
}
