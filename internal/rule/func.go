package rule

import (
	"path/filepath"

	"csfix/internal/diag"
	"csfix/internal/source"
)

// Func adapts plain functions to Rule. Built-in rules use it so each rule
// file only contains its fixing logic.
type Func struct {
	RuleName        string
	RuleDescription string
	RuleLevel       Level
	RulePriority    int
	// Extensions limits the rule to files with these extensions
	// (".php"). Empty means every file. Text read from stdin ("-") is
	// accepted by every rule.
	Extensions []string
	// Sniff, when set, must also accept the file (content checks).
	Sniff func(*source.File) bool
	Apply func(file *source.File, text string, rep diag.Reporter) string
}

func (f *Func) Name() string        { return f.RuleName }
func (f *Func) Description() string { return f.RuleDescription }
func (f *Func) Level() Level        { return f.RuleLevel }
func (f *Func) Priority() int       { return f.RulePriority }

func (f *Func) Supports(file *source.File) bool {
	if file == nil || file.Path == "-" || file.Path == "" {
		return true
	}
	if !f.matchExtension(file.Path) {
		return false
	}
	return f.Sniff == nil || f.Sniff(file)
}

func (f *Func) matchExtension(path string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range f.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (f *Func) Fix(file *source.File, text string, rep diag.Reporter) string {
	return f.Apply(file, text, rep)
}
