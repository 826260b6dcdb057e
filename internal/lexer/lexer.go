package lexer

import (
	"bytes"

	"csfix/internal/source"
	"csfix/internal/token"
)

type haltState uint8

const (
	haltNone haltState = iota
	haltPending           // saw __halt_compiler, waiting for ";" or "?>"
	haltDone              // everything left is raw data
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	inCode bool
	halt   haltState
	prev   token.Token // последний значимый токен (не trivia)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		inCode: opts.CodeMode || !HasOpenTag(file.Content),
	}
}

// Tokenize lexes the whole file. The concatenated Text of the result always
// equals the file content.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// HasOpenTag reports whether content contains a PHP open tag. Input
// without one is treated as a bare code fragment.
func HasOpenTag(content []byte) bool {
	for i := 0; ; {
		j := bytes.Index(content[i:], []byte("<?"))
		if j < 0 {
			return false
		}
		if openTagLen(content[i+j:]) > 0 {
			return true
		}
		i += j + 2
	}
}

// Next возвращает следующий токен. После конца ввода возвращает false.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	var tok token.Token
	switch {
	case lx.halt == haltDone:
		start := lx.cursor.Mark()
		lx.cursor.SkipToEnd()
		tok = token.New(token.InlineHTML, lx.cursor.TextFrom(start))
	case !lx.inCode:
		tok = lx.scanHTML()
	default:
		tok = lx.scanCode()
	}

	if !tok.IsTrivia() {
		lx.trackHalt(tok)
		lx.prev = tok
	}
	return tok, true
}

func (lx *Lexer) trackHalt(tok token.Token) {
	switch {
	case tok.Kind == token.KwHaltCompiler:
		lx.halt = haltPending
	case lx.halt == haltPending && (tok.IsChar(";") || tok.Kind == token.CloseTag):
		lx.halt = haltDone
	}
}

func (lx *Lexer) scanCode() token.Token {
	ch := lx.cursor.Peek()

	switch {
	case isSpace(ch):
		return lx.scanWhitespace()

	case ch == '?' && lx.cursor.HasPrefix("?>"):
		return lx.scanCloseTag()

	case ch == '#', ch == '/' && lx.cursor.PeekAt(1) == '/':
		return lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanBlockComment()

	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanVariable()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"':
		return lx.scanDoubleQuoted()

	case ch == '`':
		return lx.scanBacktick()

	case ch == '<' && lx.cursor.HasPrefix("<<<"):
		if tok, ok := lx.scanHeredoc(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '(':
		if tok, ok := lx.scanCast(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	default:
		return lx.scanOperatorOrPunct()
	}
}
