package rule

import (
	"csfix/internal/diag"
	"csfix/internal/source"
)

// Rule is one independent style correction.
//
// Fix must depend only on its inputs: the same file and text always give
// the same result, and Fix(Fix(t)) == Fix(t). When a rule cannot safely
// edit a region (unbalanced brackets, unexpected structure) it leaves the
// region unchanged and may explain why through rep, which can be nil.
type Rule interface {
	Name() string
	Description() string
	Level() Level
	// Priority orders rules within a pass: higher runs first.
	Priority() int
	Supports(file *source.File) bool
	Fix(file *source.File, text string, rep diag.Reporter) string
}
