// Package loader discovers component source files under a directory tree.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is the file name suffix of component sources.
const DefaultSuffix = ".component.ts"

// Source is a discovered component source file.
type Source struct {
	// Path is the file path, joined onto the scanner root.
	Path string
	// Name is the file name with the suffix removed.
	Name string
}

// Scanner walks a directory tree looking for component sources.
type Scanner struct {
	root   string
	suffix string
}

// NewScanner creates a scanner rooted at root. An empty suffix uses DefaultSuffix.
func NewScanner(root, suffix string) *Scanner {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Scanner{root: root, suffix: suffix}
}

// Root returns the directory the scanner starts from.
func (s *Scanner) Root() string {
	return s.root
}

// Suffix returns the component file suffix.
func (s *Scanner) Suffix() string {
	return s.suffix
}

// Matches reports whether a file name carries the component suffix.
func (s *Scanner) Matches(name string) bool {
	return strings.HasSuffix(name, s.suffix)
}

// ComponentName strips the suffix from a file name. A name that is only the
// suffix is kept whole.
func (s *Scanner) ComponentName(name string) string {
	base := filepath.Base(name)
	if base == s.suffix {
		return base
	}
	return strings.TrimSuffix(base, s.suffix)
}

// Walk calls fn for every matching file, in directory listing order,
// descending into subdirectories as they are met. Symlinks are followed, so
// a directory reachable through two links is walked twice; only a link back
// to one of its own ancestors is skipped.
// The first error from the filesystem or from fn stops the walk.
func (s *Scanner) Walk(ctx context.Context, fn func(Source) error) error {
	ancestors := make(map[string]bool)
	return s.walkDir(ctx, s.root, ancestors, fn)
}

func (s *Scanner) walkDir(ctx context.Context, dir string, ancestors map[string]bool, fn func(Source) error) error {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if ancestors[real] {
			return nil
		}
		ancestors[real] = true
		defer delete(ancestors, real)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat entry: %w", err)
		}

		if info.IsDir() {
			if err := s.walkDir(ctx, path, ancestors, fn); err != nil {
				return err
			}
			continue
		}

		if !s.Matches(entry.Name()) {
			continue
		}
		if err := fn(Source{Path: path, Name: s.ComponentName(entry.Name())}); err != nil {
			return err
		}
	}

	return nil
}

// Scan collects every matching source.
func (s *Scanner) Scan(ctx context.Context) ([]Source, error) {
	var sources []Source
	err := s.Walk(ctx, func(src Source) error {
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}
