package lexer

import (
	"csfix/internal/diag"
	"csfix/internal/token"
)

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.NewWhitespace(lx.cursor.TextFrom(start))
}

// scanLineComment reads a // or # comment. The newline is left for the
// following whitespace token, and "?>" ends the comment.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' || ch == '\r' {
			break
		}
		if ch == '?' && lx.cursor.PeekAt(1) == '>' {
			break
		}
		lx.cursor.Bump()
	}
	return token.New(token.Comment, lx.cursor.TextFrom(start))
}

func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	// "/**/" обычный комментарий, doc только "/**" + пробел
	if lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)) {
		kind = token.DocComment
	}
	lx.cursor.Advance(2)
	for {
		if lx.cursor.EOF() {
			lx.report(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "block comment is not closed")
			break
		}
		if lx.cursor.Bump() == '*' && lx.cursor.Eat('/') {
			break
		}
	}
	return token.New(kind, lx.cursor.TextFrom(start))
}
