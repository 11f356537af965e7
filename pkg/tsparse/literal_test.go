package tsparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single quoted", `'mekor-lib-button'`, "mekor-lib-button"},
		{"double quoted", `"x-card"`, "x-card"},
		{"template", "`x-tpl`", "x-tpl"},
		{"empty", `''`, ""},
		{"escaped quote", `'it\'s'`, "it's"},
		{"newline and tab", `'a\nb\tc'`, "a\nb\tc"},
		{"backslash", `'a\\b'`, `a\b`},
		{"hex", `'\x41'`, "A"},
		{"unicode", `'\u00e9'`, "é"},
		{"braced unicode", `'\u{1F600}'`, "😀"},
		{"line continuation", "'a\\\nb'", "ab"},
		{"unknown escape keeps char", `'\q'`, "q"},
		{"bad hex keeps x", `'\xZZ'`, "xZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unquote(tt.raw))
		})
	}
}

func TestOffsetOf(t *testing.T) {
	src := []byte("ab\ncde\nf")
	assert.Equal(t, 1, offsetOf(src, 1, 1))
	assert.Equal(t, 4, offsetOf(src, 2, 1))
	assert.Equal(t, 7, offsetOf(src, 3, 0))
	assert.Equal(t, -1, offsetOf(src, 4, 0))
	assert.Equal(t, -1, offsetOf(src, 0, 0))
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "string", ValueString.String())
	assert.Equal(t, "object", ValueObject.String())
	assert.Equal(t, "other", ValueOther.String())
}
