// Package rules is the built-in catalogue of fixers.
//
// Every rule tokenizes its input with internal/tokens, edits the stream and
// regenerates text. Rules walk the stream from the end towards the start so
// an insertion never moves a token that is still to be visited.
package rules

import (
	"fmt"

	"fortio.org/safecast"

	"csfix/internal/diag"
	"csfix/internal/lexer"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/tokens"
)

// phpExtensions lists files whose content is PHP source.
var phpExtensions = []string{".php", ".phtml", ".inc", ".phpt"}

// isPHPSource rejects files without an open tag. Their content is inline
// HTML, and lexing it as code would rewrite markup.
func isPHPSource(file *source.File) bool {
	return file.Content == nil || lexer.HasOpenTag(file.Content)
}

// Catalogue returns fresh instances of every built-in rule in registration
// order.
func Catalogue() []rule.Rule {
	return []rule.Rule{
		Indentation(),
		ShortTag(),
		LowercaseKeywords(),
		MultipleUse(),
		Visibility(),
		ControlSpaces(),
		NewWithBraces(),
		OperatorsSpaces(),
		SpacesCast(),
		UnusedUse(),
		EOFEnding(),
	}
}

// Default returns a registry holding the built-in catalogue.
func Default() *rule.Registry {
	reg := rule.NewRegistry()
	reg.MustRegister(Catalogue()...)
	return reg
}

// spanAt points a diagnostic at token i of s.
func spanAt(file *source.File, s *tokens.Stream, i int) source.Span {
	start, err := safecast.Conv[uint32](s.Offset(i))
	if err != nil {
		panic(fmt.Errorf("token offset overflow: %w", err))
	}
	size, err := safecast.Conv[uint32](len(s.At(i).Text))
	if err != nil {
		panic(fmt.Errorf("token size overflow: %w", err))
	}
	sp := source.Span{Start: start, End: start + size}
	if file != nil {
		sp.File = file.ID
	}
	return sp
}

func reportUnmatched(rep diag.Reporter, file *source.File, s *tokens.Stream, i int, ruleName string) {
	diag.ReportWarning(rep, diag.FixUnmatchedBracket, spanAt(file, s, i),
		fmt.Sprintf("%s: no matching closer for %q, region left unchanged", ruleName, s.At(i).Text)).Emit()
}
