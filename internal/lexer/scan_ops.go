package lexer

import (
	"strings"

	"csfix/internal/diag"
	"csfix/internal/token"
)

var castTypes = map[string]bool{
	"int": true, "integer": true,
	"bool": true, "boolean": true,
	"float": true, "double": true, "real": true,
	"string": true, "binary": true,
	"array": true, "object": true, "unset": true,
}

// scanCast recognizes "(" [ \t]* type [ \t]* ")". Anything else is left for
// the punctuation scanner.
func (lx *Lexer) scanCast() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // (
	lx.skipBlanks()
	nameStart := lx.cursor.Mark()
	for isIdentStartByte(lx.cursor.Peek()) && lx.cursor.Peek() < 0x80 {
		lx.cursor.Bump()
	}
	name := strings.ToLower(lx.cursor.TextFrom(nameStart))
	lx.skipBlanks()
	if !castTypes[name] || !lx.cursor.Eat(')') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	return token.New(token.Cast, lx.cursor.TextFrom(start)), true
}

func (lx *Lexer) skipBlanks() {
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var (
	ops3 = []string{"===", "!==", "<=>", "<<=", ">>=", "**=", "...", "??=", "?->"}
	ops2 = []string{
		"==", "!=", "<>", "<=", ">=", "&&", "||", "??", "++", "--",
		"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=",
		"<<", ">>", "**", "=>", "->", "::",
	}
)

const punct = ";,()[]{}=+-*/%.<>!?:&|^~@$\"'`"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range ops3 {
		if lx.try3(op[0], op[1], op[2]) {
			kind, _ := token.LookupOperator(op)
			return token.New(kind, op)
		}
	}
	for _, op := range ops2 {
		if lx.try2(op[0], op[1]) {
			kind, _ := token.LookupOperator(op)
			return token.New(kind, op)
		}
	}

	ch := lx.cursor.Bump()
	switch {
	case ch == '\\':
		return token.New(token.NsSeparator, `\`)
	case strings.IndexByte(punct, ch) >= 0:
		return token.NewChar(string(ch))
	}
	lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unexpected character")
	return token.New(token.Unknown, lx.cursor.TextFrom(start))
}
