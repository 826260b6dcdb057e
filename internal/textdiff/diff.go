// Package textdiff renders line-based unified diffs of fixed files.
package textdiff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Unified returns a unified diff between before and after labelled
// a/path and b/path, or "" when they are equal.
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := udiff.Strings(before, after)
	diff, err := udiff.ToUnified("a/"+path, "b/"+path, before, edits, Context)
	if err != nil {
		// edits come from udiff itself; an inconsistency is a bug there
		panic(err)
	}
	return diff
}

// Stat counts added and removed lines of a unified diff.
func Stat(diff string) (added, removed int) {
	inHunk := false
	for line := range strings.Lines(diff) {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
			// file headers
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
