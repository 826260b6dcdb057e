package lexer

import (
	"bytes"

	"csfix/internal/token"
)

// openTagLen returns the length of the open tag at the start of b, including
// one trailing whitespace character for "<?php" and "<?", or 0 when b does
// not start with an open tag.
func openTagLen(b []byte) int {
	if !bytes.HasPrefix(b, []byte("<?")) {
		return 0
	}
	if len(b) >= 3 && b[2] == '=' {
		return 3
	}
	if len(b) >= 5 && bytes.EqualFold(b[2:5], []byte("php")) {
		switch {
		case len(b) == 5:
			return 5
		case b[5] == '\r' && len(b) > 6 && b[6] == '\n':
			return 7
		case isSpace(b[5]):
			return 6
		}
		return 0
	}
	// короткий тег "<?" считается только перед пробелом или в конце
	switch {
	case len(b) == 2:
		return 2
	case b[2] == '\r' && len(b) > 3 && b[3] == '\n':
		return 4
	case isSpace(b[2]):
		return 3
	}
	return 0
}

// scanHTML emits inline HTML up to the next open tag, or the open tag
// itself when the cursor is on one.
func (lx *Lexer) scanHTML() token.Token {
	rest := lx.cursor.Rest()
	if n := openTagLen(rest); n > 0 {
		start := lx.cursor.Mark()
		lx.cursor.Advance(n)
		lx.inCode = true
		kind := token.OpenTag
		if n == 3 && rest[2] == '=' {
			kind = token.OpenTagWithEcho
		}
		return token.New(kind, lx.cursor.TextFrom(start))
	}

	start := lx.cursor.Mark()
	for i := 0; ; {
		j := bytes.Index(rest[i:], []byte("<?"))
		if j < 0 {
			lx.cursor.SkipToEnd()
			break
		}
		if openTagLen(rest[i+j:]) > 0 {
			lx.cursor.Advance(i + j)
			break
		}
		i += j + 2
	}
	return token.New(token.InlineHTML, lx.cursor.TextFrom(start))
}

// scanCloseTag emits "?>" together with one directly following newline.
func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	lx.cursor.EatNewline()
	lx.inCode = false
	return token.New(token.CloseTag, lx.cursor.TextFrom(start))
}
