package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ButtonSource is a minimal component used across package tests.
const ButtonSource = `import {Component, Input} from '@angular/core';

@Component({
  selector: 'mekor-lib-button',
  standalone: true,
})
export class ButtonComponent {
  @Input() label: string = '';
  @Input() disabled: boolean = false;
  @Input() type: ButtonType = ButtonType.Primary;
}
`

// CardSource declares a component with one untyped and one uninitialized input.
const CardSource = `import {Component, Input} from '@angular/core';

@Component({selector: 'mekor-lib-card'})
export class CardComponent {
  @Input() elevated = true;
  @Input() footer?: string;
}
`

// WriteFiles creates files (relative path to content) under root, creating
// parent directories as needed.
func WriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
}

// ComponentTree creates a source tree with two components and one
// unrelated TypeScript file, returning its root.
func ComponentTree(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{
		"button/button.component.ts": ButtonSource,
		"card/card.component.ts":     CardSource,
		"card/card.model.ts":         "export interface Card { title: string }\n",
	})
	return root
}
