// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mekor-lib/sampler/internal/testutil"
)

// SetupTestProject creates a temporary project with a sampler.yaml, two
// components under components/ and one unrelated file. Examples go to
// examples/.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"sampler.yaml":                          "source_dir: components\noutput_dir: examples\n",
		"components/button/button.component.ts": testutil.ButtonSource,
		"components/card/card.component.ts":     testutil.CardSource,
		"components/card/card.model.ts":         "export interface Card { title: string }\n",
	})
	return dir
}

// ListExamples returns the sorted file names in the project's examples dir.
func ListExamples(t *testing.T, projectDir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(projectDir, "examples"))
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if fenceCount := strings.Count(md, "```"); fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
