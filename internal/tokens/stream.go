package tokens

import (
	"fmt"
	"strings"

	"csfix/internal/diag"
	"csfix/internal/lexer"
	"csfix/internal/source"
	"csfix/internal/token"
)

// Stream is an editable, ordered sequence of tokens for one file pass.
// It is owned by a single goroutine and never shared.
type Stream struct {
	toks []token.Token
	// epoch grows on every structural edit (insert, remove). Refs taken
	// before an edit are rejected by Index.
	epoch uint32
}

// Ref is a position handle returned by scans. It stays valid until the
// next structural edit of the stream that produced it.
type Ref struct {
	idx   int
	epoch uint32
}

// FromSource tokenizes text the way a file is tokenized: inline HTML
// until an open tag, or plain code when the text has no open tag.
func FromSource(text string) *Stream {
	return FromFile(&source.File{Content: []byte(text)}, nil)
}

// FromFile tokenizes a file and reports lexical anomalies to rep, which
// may be nil.
func FromFile(file *source.File, rep diag.Reporter) *Stream {
	return &Stream{toks: lexer.Tokenize(file, lexer.Options{Reporter: rep})}
}

// FromCode tokenizes text as PHP code regardless of open tags. It builds
// fragments for splicing into another stream.
func FromCode(text string) *Stream {
	file := &source.File{Content: []byte(text)}
	return &Stream{toks: lexer.Tokenize(file, lexer.Options{CodeMode: true})}
}

// FromTokens wraps existing tokens. The slice is copied.
func FromTokens(toks []token.Token) *Stream {
	return &Stream{toks: append([]token.Token(nil), toks...)}
}

func (s *Stream) Count() int { return len(s.toks) }

// At returns the token at i for in-place modification. Out-of-range
// access panics.
func (s *Stream) At(i int) *token.Token {
	if i < 0 || i >= len(s.toks) {
		panic(fmt.Sprintf("tokens: index %d out of range [0,%d)", i, len(s.toks)))
	}
	return &s.toks[i]
}

// Tokens returns a copy of the current tokens.
func (s *Stream) Tokens() []token.Token {
	return append([]token.Token(nil), s.toks...)
}

// Ref returns a handle for position i at the current epoch.
func (s *Stream) Ref(i int) Ref {
	return Ref{idx: i, epoch: s.epoch}
}

// Index resolves a ref. It panics when the stream was structurally
// edited after the ref was taken.
func (s *Stream) Index(r Ref) int {
	if r.epoch != s.epoch {
		panic(fmt.Sprintf("tokens: stale ref to %d (epoch %d, stream at %d)", r.idx, r.epoch, s.epoch))
	}
	return r.idx
}

// InsertAt inserts toks before position index. index == Count appends.
// Every later token moves right by len(toks).
func (s *Stream) InsertAt(index int, toks ...token.Token) {
	if index < 0 || index > len(s.toks) {
		panic(fmt.Sprintf("tokens: insert position %d out of range [0,%d]", index, len(s.toks)))
	}
	if len(toks) == 0 {
		return
	}
	s.toks = append(s.toks[:index], append(append([]token.Token(nil), toks...), s.toks[index:]...)...)
	s.epoch++
}

// RemoveRange deletes tokens start..end inclusive.
func (s *Stream) RemoveRange(start, end int) {
	if start < 0 || end >= len(s.toks) || start > end {
		panic(fmt.Sprintf("tokens: remove range [%d,%d] invalid for %d tokens", start, end, len(s.toks)))
	}
	s.toks = append(s.toks[:start], s.toks[end+1:]...)
	s.epoch++
}

// Clear blanks the token at i without moving any other token.
func (s *Stream) Clear(i int) {
	s.At(i).Clear()
}

// ClearRange blanks tokens start..end inclusive.
func (s *Stream) ClearRange(start, end int) {
	for i := start; i <= end; i++ {
		s.Clear(i)
	}
}

// GenerateText concatenates all token texts. It is the only way a stream
// is turned back into source.
func (s *Stream) GenerateText() string {
	return s.GenerateRange(0, len(s.toks)-1)
}

// GenerateRange concatenates texts of tokens start..end inclusive.
func (s *Stream) GenerateRange(start, end int) string {
	var sb strings.Builder
	for i := max(start, 0); i <= end && i < len(s.toks); i++ {
		sb.WriteString(s.toks[i].Text)
	}
	return sb.String()
}

// Offset returns the byte offset of token i in the generated text.
func (s *Stream) Offset(i int) int {
	off := 0
	for j := 0; j < i && j < len(s.toks); j++ {
		off += len(s.toks[j].Text)
	}
	return off
}
