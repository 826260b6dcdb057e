package tokens

import (
	"strings"

	"csfix/internal/token"
)

// NamespaceUseIndexes returns positions of "use" keywords that import
// names at file or namespace level. Trait uses inside class bodies and
// closure "use (...)" clauses are excluded.
func (s *Stream) NamespaceUseIndexes() []int {
	var (
		out []int
		// стек фигурных скобок: true, если это тело namespace
		braces []bool
	)
	topLevel := func() bool {
		for _, ns := range braces {
			if !ns {
				return false
			}
		}
		return true
	}

	for i := range s.toks {
		tok := s.toks[i]
		switch {
		case tok.IsChar("{"):
			braces = append(braces, s.opensNamespace(i))
		case tok.IsChar("}"):
			if len(braces) > 0 {
				braces = braces[:len(braces)-1]
			}
		case tok.Kind == token.KwUse && topLevel():
			if prev, ok := s.FindPrevNonTrivial(i); ok && s.toks[s.Index(prev)].IsChar(")") {
				continue
			}
			if next, ok := s.FindNextNonTrivial(i); ok && s.toks[s.Index(next)].IsChar("(") {
				continue
			}
			out = append(out, i)
		}
	}
	return out
}

// opensNamespace reports whether the "{" at i follows "namespace Name".
func (s *Stream) opensNamespace(i int) bool {
	for j := i - 1; j >= 0; j-- {
		tok := s.toks[j]
		switch {
		case tok.IsTrivia(), tok.Kind == token.Ident, tok.Kind == token.NsSeparator:
			continue
		case tok.Kind == token.KwNamespace:
			return true
		default:
			return false
		}
	}
	return false
}

// LineIndent returns the indentation of the line holding token i: the
// spaces and tabs after the last line break that precedes it. The break
// may sit inside any token, e.g. "<?php\n" or a line comment.
func (s *Stream) LineIndent(i int) string {
	j := i - 1
	for j >= 0 && lastNewline(s.toks[j].Text) < 0 {
		j--
	}
	var line strings.Builder
	if j >= 0 {
		text := s.toks[j].Text
		line.WriteString(text[lastNewline(text)+1:])
	}
	for k := j + 1; k < i; k++ {
		line.WriteString(s.toks[k].Text)
	}
	rest := line.String()
	return rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))]
}

func lastNewline(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' || s[i] == '\r' {
			return i
		}
	}
	return -1
}
