package token

import "strings"

// Token is one lexical unit. Kind is fixed at creation; Text is the exact
// source bytes and may be replaced by fixers. Concatenating the Text of all
// tokens of a stream reproduces the source.
type Token struct {
	Kind Kind
	Text string
}

// New returns a token of the given kind.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// NewChar returns a single-character punctuation token.
func NewChar(text string) Token {
	return Token{Kind: Char, Text: text}
}

// NewWhitespace returns a whitespace token.
func NewWhitespace(text string) Token {
	return Token{Kind: Whitespace, Text: text}
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsChar reports whether the token is the punctuation character s.
func (t Token) IsChar(s string) bool {
	return t.Kind == Char && t.Text == s
}

// IsDedicated reports whether the token has a kind of its own rather than
// being plain punctuation.
func (t Token) IsDedicated() bool { return t.Kind != Char }

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool { return t.Kind == Whitespace }

// HasNewline reports whether the token text contains a line break.
func (t Token) HasNewline() bool {
	return strings.ContainsAny(t.Text, "\n\r")
}

// IsComment reports whether the token is a comment of any style.
func (t Token) IsComment() bool {
	return t.Kind == Comment || t.Kind == DocComment
}

// IsTrivia reports whether the token carries no syntax: whitespace,
// comments and cleared tokens.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, Comment, DocComment, Void:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsCast reports whether the token is a type cast.
func (t Token) IsCast() bool { return t.Kind == Cast }

// IsVoid reports whether the token was cleared.
func (t Token) IsVoid() bool { return t.Kind == Void }

// Clear blanks the token in place. The slot stays in the stream so
// positions of other tokens do not move.
func (t *Token) Clear() {
	t.Kind = Void
	t.Text = ""
}

// SetText replaces the token text. Kind is left untouched.
func (t *Token) SetText(text string) {
	t.Text = text
}
