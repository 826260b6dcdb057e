package tokens

import "csfix/internal/token"

// Pattern matches a token by kind, and for Char tokens also by text.
type Pattern struct {
	Kind token.Kind
	Text string
}

// Ch matches the punctuation character s.
func Ch(s string) Pattern { return Pattern{Kind: token.Char, Text: s} }

// K matches any token of kind k.
func K(k token.Kind) Pattern { return Pattern{Kind: k} }

func (p Pattern) Match(t token.Token) bool {
	if t.Kind != p.Kind {
		return false
	}
	return p.Text == "" || t.Text == p.Text
}

func matchAny(t token.Token, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(t) {
			return true
		}
	}
	return false
}

// FindNext returns the first token after from matching any pattern.
func (s *Stream) FindNext(from int, patterns ...Pattern) (Ref, bool) {
	for i := from + 1; i < len(s.toks); i++ {
		if matchAny(s.toks[i], patterns) {
			return s.Ref(i), true
		}
	}
	return Ref{}, false
}

// FindPrev returns the last token before from matching any pattern.
func (s *Stream) FindPrev(from int, patterns ...Pattern) (Ref, bool) {
	for i := min(from, len(s.toks)) - 1; i >= 0; i-- {
		if matchAny(s.toks[i], patterns) {
			return s.Ref(i), true
		}
	}
	return Ref{}, false
}

// FindPrevNonTrivial skips backwards over whitespace, comments and
// cleared tokens.
func (s *Stream) FindPrevNonTrivial(from int) (Ref, bool) {
	for i := min(from, len(s.toks)) - 1; i >= 0; i-- {
		if !s.toks[i].IsTrivia() {
			return s.Ref(i), true
		}
	}
	return Ref{}, false
}

// FindNextNonTrivial skips forwards over whitespace, comments and
// cleared tokens.
func (s *Stream) FindNextNonTrivial(from int) (Ref, bool) {
	for i := from + 1; i < len(s.toks); i++ {
		if !s.toks[i].IsTrivia() {
			return s.Ref(i), true
		}
	}
	return Ref{}, false
}

// MatchBalanced finds the closer of the bracket at open by depth counting.
// It returns false when open is not an opener or no closer exists.
func (s *Stream) MatchBalanced(open int, opener, closer Pattern) (Ref, bool) {
	if open < 0 || open >= len(s.toks) || !opener.Match(s.toks[open]) {
		return Ref{}, false
	}
	depth := 0
	for i := open; i < len(s.toks); i++ {
		switch {
		case opener.Match(s.toks[i]):
			depth++
		case closer.Match(s.toks[i]):
			depth--
			if depth == 0 {
				return s.Ref(i), true
			}
		}
	}
	return Ref{}, false
}

// IsIndexOpener reports whether the "[" at i starts an index access rather
// than an array literal. It looks at the previous significant token only:
// a value-producing token (variable, name, string, ")" or "]") makes it an
// index. "}" is not counted: "[$a, $b] = ..." after a block is a literal.
func (s *Stream) IsIndexOpener(i int) bool {
	if !s.At(i).IsChar("[") {
		return false
	}
	ref, ok := s.FindPrevNonTrivial(i)
	if !ok {
		return false
	}
	prev := s.toks[s.Index(ref)]
	switch prev.Kind {
	case token.Variable, token.Ident, token.ConstantString, token.InterpolatedString:
		return true
	case token.Char:
		return prev.Text == ")" || prev.Text == "]"
	}
	return false
}
