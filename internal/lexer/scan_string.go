package lexer

import (
	"bytes"

	"csfix/internal/diag"
	"csfix/internal/token"
)

func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	for {
		if lx.cursor.EOF() {
			lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "string literal is not closed")
			break
		}
		ch := lx.cursor.Bump()
		if ch == '\\' {
			lx.cursor.Bump()
			continue
		}
		if ch == '\'' {
			break
		}
	}
	return token.New(token.ConstantString, lx.cursor.TextFrom(start))
}

func (lx *Lexer) scanDoubleQuoted() token.Token {
	start := lx.cursor.Mark()
	interpolated, closed := lx.scanInterpolated('"')
	if !closed {
		lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "string literal is not closed")
	}
	kind := token.ConstantString
	if interpolated {
		kind = token.InterpolatedString
	}
	return token.New(kind, lx.cursor.TextFrom(start))
}

func (lx *Lexer) scanBacktick() token.Token {
	start := lx.cursor.Mark()
	if _, closed := lx.scanInterpolated('`'); !closed {
		lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "shell string is not closed")
	}
	return token.New(token.Backtick, lx.cursor.TextFrom(start))
}

// scanInterpolated consumes a string delimited by quote, starting on the
// opening quote. It reports whether the string contains variables and
// whether the closing quote was found. Inside "{$ ... }" nested strings and
// braces are skipped as a whole.
func (lx *Lexer) scanInterpolated(quote byte) (interpolated, closed bool) {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		switch {
		case ch == '\\':
			lx.cursor.Bump()
		case ch == quote:
			return interpolated, true
		case ch == '$' && (isIdentStartByte(lx.cursor.Peek()) || lx.cursor.Peek() == '{'):
			interpolated = true
		case ch == '{' && lx.cursor.Peek() == '$':
			interpolated = true
			lx.skipEmbeddedExpr()
		}
	}
	return interpolated, false
}

// skipEmbeddedExpr consumes a "{$...}" body up to and including the
// matching "}". The opening "{" was already read.
func (lx *Lexer) skipEmbeddedExpr() {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
		case '\'':
			lx.scanSingleQuoted()
		case '"':
			lx.scanInterpolated('"')
		default:
			lx.cursor.Bump()
		}
	}
}

// scanHeredoc reads a heredoc or nowdoc from "<<<" through its closing
// label. It returns false, consuming nothing, when "<<<" does not open one.
func (lx *Lexer) scanHeredoc() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(3)
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}

	quote := lx.cursor.Peek()
	if quote == '"' || quote == '\'' {
		lx.cursor.Bump()
	} else {
		quote = 0
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	label := lx.scanName()
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if !lx.cursor.EatNewline() {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	// закрывающая метка: строка, начинающаяся (после отступа) с label,
	// за которой не идёт символ имени
	for !lx.cursor.EOF() {
		lineStart := lx.cursor.Mark()
		for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
			lx.cursor.Bump()
		}
		if lx.cursor.HasPrefix(label) && !isIdentContinueByte(lx.cursor.PeekAt(uint32(len(label)))) {
			lx.cursor.Advance(len(label))
			return token.New(token.Heredoc, lx.cursor.TextFrom(start)), true
		}
		lx.cursor.Reset(lineStart)
		if i := bytes.IndexByte(lx.cursor.Rest(), '\n'); i >= 0 {
			lx.cursor.Advance(i + 1)
		} else {
			lx.cursor.SkipToEnd()
		}
	}
	lx.report(diag.LexUnterminatedHeredoc, lx.cursor.SpanFrom(start), "heredoc label "+label+" is never closed")
	return token.New(token.Heredoc, lx.cursor.TextFrom(start)), true
}
