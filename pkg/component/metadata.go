// Package component defines the metadata extracted from a component source file.
package component

// Metadata describes one discovered component.
type Metadata struct {
	// Selector is the tag name used to reference the component; empty if undeclared.
	Selector string `json:"selector" yaml:"selector"`
	// Standalone mirrors the standalone property of the declaration decorator.
	Standalone bool `json:"standalone" yaml:"standalone"`
	// Inputs are the input-decorated properties in declaration order.
	Inputs []Input `json:"inputs" yaml:"inputs"`
}

// Input is one input-decorated property.
type Input struct {
	Name string `json:"name" yaml:"name"`
	// Type is the declared type text, nil when the property is untyped.
	Type *string `json:"type" yaml:"type"`
	// DefaultValue is the initializer text, nil when there is no initializer.
	DefaultValue *string `json:"defaultValue" yaml:"defaultValue"`
}

// New returns empty metadata with a non-nil inputs slice.
func New() *Metadata {
	return &Metadata{Inputs: []Input{}}
}

// IsEmpty reports whether no declaration or input decorator was matched.
func (m *Metadata) IsEmpty() bool {
	return m.Selector == "" && !m.Standalone && len(m.Inputs) == 0
}

// DefaultText returns the initializer text as string interpolation would
// render it: the literal "undefined" when there is no initializer.
func (i Input) DefaultText() string {
	if i.DefaultValue == nil {
		return "undefined"
	}
	return *i.DefaultValue
}

// Text returns a pointer to s. It is a convenience for building optional fields.
func Text(s string) *string {
	return &s
}
