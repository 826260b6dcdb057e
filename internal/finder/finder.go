// Package finder enumerates the files a run should fix.
package finder

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	ErrBadRoot    = errors.New("unreachable root")
	ErrBadPattern = errors.New("invalid pattern")
)

var (
	DefaultInclude  = []string{"*.php", "*.phpt", "*.twig"}
	DefaultSkipDirs = []string{"vendor", ".git", "node_modules"}
)

// Finder walks Roots in order. Directories are walked in lexical order;
// a root naming a file is yielded as is, without include filtering.
type Finder struct {
	Roots []string
	// Include holds base-name globs; empty means DefaultInclude.
	Include []string
	// Exclude holds doublestar globs ("tests/**/Fixtures") matched against
	// the slash path relative to the root. A pattern without "/" also
	// matches any base name. Excluding a directory excludes its subtree.
	Exclude []string
	// SkipDirs holds directory base names never descended into. Hidden
	// directories are always skipped.
	SkipDirs []string
}

// New returns a finder with default filters.
func New(roots ...string) *Finder {
	return &Finder{Roots: roots}
}

// Check reports roots that cannot be stat'ed and malformed patterns.
func (f *Finder) Check() error {
	var errs []error
	for _, p := range append(slices.Clone(f.Include), f.Exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			errs = append(errs, fmt.Errorf("%w %q", ErrBadPattern, p))
		}
	}
	for _, root := range f.roots() {
		if _, err := os.Stat(root); err != nil {
			errs = append(errs, fmt.Errorf("%w %q: %w", ErrBadRoot, root, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Finder) roots() []string {
	if len(f.Roots) == 0 {
		return []string{"."}
	}
	return f.Roots
}

// Files returns a lazy sequence of matching paths. Every call walks the
// roots again. Walk errors are yielded with an empty path and do not stop
// the walk.
func (f *Finder) Files() iter.Seq2[string, error] {
	include := f.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	skip := f.SkipDirs
	if len(skip) == 0 {
		skip = DefaultSkipDirs
	}

	return func(yield func(string, error) bool) {
		seen := make(map[string]bool)
		emit := func(path string) bool {
			clean := filepath.Clean(path)
			if seen[clean] {
				return true
			}
			seen[clean] = true
			return yield(clean, nil)
		}

		for _, root := range f.roots() {
			info, err := os.Stat(root)
			if err != nil {
				if !yield("", fmt.Errorf("%w %q: %w", ErrBadRoot, root, err)) {
					return
				}
				continue
			}
			if !info.IsDir() {
				if !emit(root) {
					return
				}
				continue
			}

			stopped := false
			walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					if !yield("", err) {
						stopped = true
						return filepath.SkipAll
					}
					return nil
				}
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					rel = path
				}
				rel = filepath.ToSlash(rel)

				if d.IsDir() {
					if path != root && (isHidden(d.Name()) || matchAny(skip, d.Name())) {
						return filepath.SkipDir
					}
					if rel != "." && excluded(f.Exclude, rel, d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}
				if !d.Type().IsRegular() || !matchAny(include, d.Name()) || excluded(f.Exclude, rel, d.Name()) {
					return nil
				}
				if !emit(path) {
					stopped = true
					return filepath.SkipAll
				}
				return nil
			})
			if stopped {
				return
			}
			if walkErr != nil && !yield("", walkErr) {
				return
			}
		}
	}
}

// Collect drains Files, joining errors.
func (f *Finder) Collect() ([]string, error) {
	var (
		out  []string
		errs []error
	)
	for path, err := range f.Files() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, path)
	}
	return out, errors.Join(errs...)
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(filepath.ToSlash(p), name); err == nil && ok {
			return true
		}
	}
	return false
}

func excluded(patterns []string, rel, name string) bool {
	for _, p := range patterns {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, err := doublestar.Match(p, name); err == nil && ok {
				return true
			}
		}
	}
	return false
}
