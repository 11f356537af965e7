package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekor-lib/sampler/pkg/component"
	"github.com/mekor-lib/sampler/pkg/tsparse"
)

func extract(t *testing.T, src string) *component.Metadata {
	t.Helper()
	md, err := New(nil, DefaultMarkers()).Extract(context.Background(), "test.component.ts", []byte(src))
	require.NoError(t, err)
	return md
}

func TestExtractFile_ButtonComponent(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "components", "button", "button.component.ts")
	md, err := New(nil, DefaultMarkers()).ExtractFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "mekor-lib-button", md.Selector)
	assert.True(t, md.Standalone)

	want := []component.Input{
		{Name: "label", Type: component.Text("string"), DefaultValue: component.Text("''")},
		{Name: "disabled", Type: component.Text("boolean"), DefaultValue: component.Text("false")},
		{Name: "type", Type: component.Text("ButtonType"), DefaultValue: component.Text("ButtonType.Primary")},
		{Name: "size", Type: component.Text("ButtonSize"), DefaultValue: component.Text("ButtonSize.Medium")},
		{Name: "font", Type: component.Text("ButtonFontSize"), DefaultValue: component.Text("ButtonFontSize.FS14")},
	}
	assert.Equal(t, want, md.Inputs)
}

func TestExtract_ButtonScenario(t *testing.T) {
	md := extract(t, `import {Component, Input} from '@angular/core';

@Component({
  selector: 'mekor-lib-button',
  standalone: true,
})
export class ButtonComponent {
  @Input() label: string = '';
  @Input() disabled: boolean = false;
  @Input() type: ButtonType = ButtonType.Primary;
}

export enum ButtonType {
  Primary = 'primary',
}
`)

	assert.Equal(t, &component.Metadata{
		Selector:   "mekor-lib-button",
		Standalone: true,
		Inputs: []component.Input{
			{Name: "label", Type: component.Text("string"), DefaultValue: component.Text("''")},
			{Name: "disabled", Type: component.Text("boolean"), DefaultValue: component.Text("false")},
			{Name: "type", Type: component.Text("ButtonType"), DefaultValue: component.Text("ButtonType.Primary")},
		},
	}, md)
}

func TestExtract_NoDecorators(t *testing.T) {
	md := extract(t, "export class Plain {\n  label = 'x';\n}\n")
	assert.Equal(t, "", md.Selector)
	assert.False(t, md.Standalone)
	assert.NotNil(t, md.Inputs)
	assert.Empty(t, md.Inputs)
	assert.True(t, md.IsEmpty())
}

func TestExtract_MarkerMatching(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		selector   string
		standalone bool
		inputs     []string
	}{
		{
			name:     "non-call declaration decorator is ignored",
			src:      "@Component\nclass A {}\n",
			selector: "",
		},
		{
			name:     "qualified callee does not match",
			src:      "@core.Component({selector: 'x-a'})\nclass A {}\n",
			selector: "",
		},
		{
			name:     "quoted key does not match",
			src:      "@Component({'selector': 'x-a'})\nclass A {}\n",
			selector: "",
		},
		{
			name:     "non-string selector is ignored",
			src:      "const SEL = 'x-a';\n@Component({selector: SEL})\nclass A {}\n",
			selector: "",
		},
		{
			name:     "template literal selector",
			src:      "@Component({selector: `x-tpl`})\nclass A {}\n",
			selector: "x-tpl",
		},
		{
			name:       "standalone requires literal true",
			src:        "const yes = true;\n@Component({selector: 'x-a', standalone: yes})\nclass A {}\n",
			selector:   "x-a",
			standalone: false,
		},
		{
			name:       "last declaration wins",
			src:        "@Component({selector: 'first', standalone: true})\nclass A {}\n@Component({selector: 'second', standalone: false})\nclass B {}\n",
			selector:   "second",
			standalone: false,
		},
		{
			name:       "duplicate property inside one decorator",
			src:        "@Component({selector: 'a', selector: 'b', standalone: false, standalone: true})\nclass A {}\n",
			selector:   "b",
			standalone: true,
		},
		{
			name:     "non-object argument is ignored",
			src:      "@Component('x-a')\nclass A {}\n",
			selector: "",
		},
		{
			name:   "non-call input decorator is ignored",
			src:    "class A {\n  @Input label = 'x';\n  @Input() size = 1;\n}\n",
			inputs: []string{"size"},
		},
		{
			name:   "other decorators are ignored",
			src:    "class A {\n  @Output() clicked = 1;\n  @ViewChild('x') child;\n  @Input() value = 2;\n}\n",
			inputs: []string{"value"},
		},
		{
			name:   "inputs in every class are collected",
			src:    "class A {\n  @Input() a = 1;\n}\nclass B {\n  @Input() b = 2;\n}\n",
			inputs: []string{"a", "b"},
		},
		{
			name:   "doubly decorated property appears twice",
			src:    "class A {\n  @Input() @Input() a = 1;\n}\n",
			inputs: []string{"a", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := extract(t, tt.src)
			assert.Equal(t, tt.selector, md.Selector)
			assert.Equal(t, tt.standalone, md.Standalone)

			names := []string{}
			for _, in := range md.Inputs {
				names = append(names, in.Name)
			}
			if tt.inputs == nil {
				tt.inputs = []string{}
			}
			assert.Equal(t, tt.inputs, names)
		})
	}
}

func TestExtract_OptionalFields(t *testing.T) {
	md := extract(t, "class A {\n  @Input() untyped;\n  @Input() typed: number;\n  @Input() inferred = 3;\n}\n")
	require.Len(t, md.Inputs, 3)

	assert.Nil(t, md.Inputs[0].Type)
	assert.Nil(t, md.Inputs[0].DefaultValue)

	assert.Equal(t, component.Text("number"), md.Inputs[1].Type)
	assert.Nil(t, md.Inputs[1].DefaultValue)

	assert.Nil(t, md.Inputs[2].Type)
	assert.Equal(t, "3", md.Inputs[2].DefaultText())
}

func TestExtract_CustomMarkers(t *testing.T) {
	src := "@Widget({selector: 'w-x'})\nclass A {\n  @Prop() size = 1;\n  @Input() ignored = 2;\n}\n"
	md, err := New(nil, Markers{Declaration: "Widget", Input: "Prop"}).Extract(context.Background(), "a.ts", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "w-x", md.Selector)
	require.Len(t, md.Inputs, 1)
	assert.Equal(t, "size", md.Inputs[0].Name)
}

func TestExtract_Idempotent(t *testing.T) {
	src := []byte("@Component({selector: 'x-a'})\nclass A {\n  @Input() a: string = 'q';\n}\n")
	e := New(nil, DefaultMarkers())

	first, err := e.Extract(context.Background(), "a.ts", src)
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), "a.ts", src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtract_SyntaxError(t *testing.T) {
	_, err := New(nil, DefaultMarkers()).Extract(context.Background(), "bad.component.ts", []byte("@Component({\nclass"))
	require.Error(t, err)

	var serr *tsparse.SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestExtract_ValidSourcesOutsideEsbuildTransform(t *testing.T) {
	md := extract(t, `let a = 1;
let a = 2;
@Component({selector: 'dup'}) export class A { @Input() x = 1; }
`)
	assert.Equal(t, "dup", md.Selector)
	assert.Equal(t, []component.Input{{Name: "x", DefaultValue: component.Text("1")}}, md.Inputs)

	md = extract(t, `export const B = @Other() class {};
@Component({selector: 'after-expr'})
export class C {}
`)
	assert.Equal(t, "after-expr", md.Selector)
	assert.Empty(t, md.Inputs)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := New(nil, DefaultMarkers()).ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.component.ts"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read source file")
}
