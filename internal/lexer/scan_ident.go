package lexer

import (
	"strings"

	"csfix/internal/token"
)

func (lx *Lexer) scanName() string {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.cursor.TextFrom(start)
}

func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // $
	lx.scanName()
	return token.New(token.Variable, lx.cursor.TextFrom(start))
}

// scanIdentOrKeyword reads a name and classifies it. Member names after
// "->", "?->" and "::", segments of qualified names and names declared
// with function/const are plain identifiers even when spelled like
// keywords; "::class" stays a keyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	name := lx.scanName()

	switch lx.prev.Kind {
	case token.ObjectOperator, token.NullsafeObjectOperator:
		return token.New(token.Ident, name)
	case token.DoubleColon:
		if strings.EqualFold(name, "class") {
			return token.New(token.KwClass, name)
		}
		return token.New(token.Ident, name)
	case token.KwFunction, token.KwConst, token.NsSeparator:
		return token.New(token.Ident, name)
	}
	// первый сегмент квалифицированного имени: Print\Foo, но не namespace\foo
	if lx.cursor.Peek() == '\\' && !strings.EqualFold(name, "namespace") {
		return token.New(token.Ident, name)
	}

	if kind, ok := token.LookupKeyword(name); ok {
		return token.New(kind, name)
	}
	return token.New(token.Ident, name)
}
