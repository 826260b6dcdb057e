package lexer

import (
	"csfix/internal/token"
)

// scanNumber reads integer and float literals: 0x1F, 0b101, 0o17, 1_000,
// 1.5, .5, 1e10, 1.5E-3.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.LNumber

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Advance(2)
			lx.eatDigits(isHex)
			return token.New(kind, lx.cursor.TextFrom(start))
		case 'b', 'B':
			lx.cursor.Advance(2)
			lx.eatDigits(isBin)
			return token.New(kind, lx.cursor.TextFrom(start))
		case 'o', 'O':
			lx.cursor.Advance(2)
			lx.eatDigits(isDec)
			return token.New(kind, lx.cursor.TextFrom(start))
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.DNumber
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	} else if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' && lx.cursor.PeekAt(1) != '=' {
		// "1." тоже float, но не "1..2" и не "1 .= x"
		kind = token.DNumber
		lx.cursor.Bump()
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		sign := lx.cursor.PeekAt(1)
		switch {
		case isDec(sign):
			kind = token.DNumber
			lx.cursor.Bump()
			lx.eatDigits(isDec)
		case (sign == '+' || sign == '-') && isDec(lx.cursor.PeekAt(2)):
			kind = token.DNumber
			lx.cursor.Advance(2)
			lx.eatDigits(isDec)
		}
	}
	return token.New(kind, lx.cursor.TextFrom(start))
}

// eatDigits consumes digits accepted by ok, allowing single "_" separators
// between them.
func (lx *Lexer) eatDigits(ok func(byte) bool) {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ok(ch) {
			lx.cursor.Bump()
			continue
		}
		if ch == '_' && ok(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}
