package rules

import (
	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
	"csfix/internal/token"
	"csfix/internal/tokens"
)

// ControlSpaces normalizes spacing around control structures:
// "}elseif($a){" becomes "} elseif ($a) {". Gaps that contain a line
// break or a comment are kept.
func ControlSpaces() rule.Rule {
	return &rule.Func{
		RuleName:        "control_spaces",
		RuleDescription: "A single space should be between: the closing brace and the control, the control and the opening parenthesis, the closing parenthesis and the opening brace.",
		RuleLevel:       rule.LevelSymfony,
		Extensions:      phpExtensions,
		Sniff:           isPHPSource,
		Apply:           fixControlSpaces,
	}
}

type controlShape struct {
	parens     bool // keyword (...)
	afterBrace bool // } keyword
}

var controls = map[token.Kind]controlShape{
	token.KwIf:      {parens: true},
	token.KwElseif:  {parens: true, afterBrace: true},
	token.KwElse:    {afterBrace: true},
	token.KwWhile:   {parens: true, afterBrace: true},
	token.KwDo:      {},
	token.KwFor:     {parens: true},
	token.KwForeach: {parens: true},
	token.KwSwitch:  {parens: true},
	token.KwTry:     {},
	token.KwCatch:   {parens: true, afterBrace: true},
	token.KwFinally: {afterBrace: true},
}

func fixControlSpaces(file *source.File, text string, rep diag.Reporter) string {
	s := tokens.FromSource(text)

	for i := s.Count() - 1; i >= 0; i-- {
		kind := s.At(i).Kind
		shape, ok := controls[kind]
		prevOpener := "}"
		if !ok {
			// замыкание: function () use ($x) {
			if kind != token.KwUse || !prevIs(s, i, ")") {
				continue
			}
			shape = controlShape{parens: true}
			prevOpener = ")"
		}
		fixControl(file, s, i, shape, prevOpener, rep)
	}

	return s.GenerateText()
}

// fixControl edits right to left so indices to the left of an edit stay
// valid.
func fixControl(file *source.File, s *tokens.Stream, kw int, shape controlShape, prevOpener string, rep diag.Reporter) {
	body := kw
	open, closing := -1, -1
	if shape.parens {
		ref, ok := s.FindNextNonTrivial(kw)
		if !ok || !s.At(s.Index(ref)).IsChar("(") {
			return
		}
		open = s.Index(ref)
		cref, ok := s.MatchBalanced(open, tokens.Ch("("), tokens.Ch(")"))
		if !ok {
			reportUnmatched(rep, file, s, open, "control_spaces")
			return
		}
		closing = s.Index(cref)
		body = closing
	}

	if ref, ok := s.FindNextNonTrivial(body); ok && s.At(s.Index(ref)).IsChar("{") {
		setGap(s, body, s.Index(ref))
	}
	if shape.parens {
		clearGap(s, closing-1)
		clearGap(s, open+1)
		setGap(s, kw, open)
	}

	prev := -1
	if shape.afterBrace || prevOpener == ")" {
		if ref, ok := s.FindPrevNonTrivial(kw); ok && s.At(s.Index(ref)).IsChar(prevOpener) {
			prev = s.Index(ref)
		}
	}
	if prev >= 0 {
		setGap(s, prev, kw)
	}
}

func prevIs(s *tokens.Stream, i int, ch string) bool {
	ref, ok := s.FindPrevNonTrivial(i)
	return ok && s.At(s.Index(ref)).IsChar(ch)
}

// setGap leaves exactly one space between tokens a and b. Gaps holding
// comments or line breaks are not touched.
func setGap(s *tokens.Stream, a, b int) {
	switch {
	case b == a+1:
		s.InsertAt(b, token.NewWhitespace(" "))
	case b == a+2 && s.At(a+1).IsWhitespace() && !s.At(a+1).HasNewline():
		s.At(a + 1).SetText(" ")
	}
}

// clearGap blanks the whitespace token at i unless it breaks the line.
func clearGap(s *tokens.Stream, i int) {
	if i < 0 || i >= s.Count() {
		return
	}
	if tok := s.At(i); tok.IsWhitespace() && !tok.HasNewline() {
		s.Clear(i)
	}
}
