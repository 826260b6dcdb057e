package lexer

import (
	"testing"

	"csfix/internal/source"
)

func TestCursorBasics(t *testing.T) {
	c := NewCursor(&source.File{Content: []byte("<?PHP x")})
	if !c.HasPrefixFold("<?php") || c.HasPrefix("<?php") {
		t.Fatal("prefix checks broken")
	}
	m := c.Mark()
	c.Advance(5)
	if got := c.TextFrom(m); got != "<?PHP" {
		t.Fatalf("TextFrom = %q", got)
	}
	if c.PeekAt(1) != 'x' || c.PeekAt(10) != 0 {
		t.Fatal("PeekAt broken")
	}
	c.Advance(100)
	if !c.EOF() || c.Bump() != 0 {
		t.Fatal("Advance must clamp to the limit")
	}
	c.Reset(m)
	if c.Peek() != '<' {
		t.Fatal("Reset broken")
	}
}

func TestEatNewline(t *testing.T) {
	for _, src := range []string{"\n", "\r\n", "\r"} {
		c := NewCursor(&source.File{Content: []byte(src)})
		if !c.EatNewline() || !c.EOF() {
			t.Errorf("EatNewline(%q) did not consume the whole newline", src)
		}
	}
}
