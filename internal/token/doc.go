// Package token defines the lexical units produced by internal/lexer.
//
// Tokens are lossless: whitespace and comments are tokens of their own,
// and every byte of the input belongs to exactly one token. Single
// punctuation characters without a dedicated kind share the Char kind and
// are distinguished by their text, which keeps rule code close to how the
// source reads (IsChar(";"), IsChar("(")).
package token
