package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"csfix/internal/source"
	"csfix/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text"`
	Span source.Span `json:"span"`
}

// tokenSpans assigns byte ranges to tokens laid end to end from offset 0.
func tokenSpans(tokens []token.Token, file source.FileID) ([]source.Span, error) {
	spans := make([]source.Span, len(tokens))
	var off uint32
	for i, tok := range tokens {
		n, err := safecast.Conv[uint32](len(tok.Text))
		if err != nil {
			return nil, fmt.Errorf("token %d length overflow: %w", i, err)
		}
		spans[i] = source.Span{File: file, Start: off, End: off + n}
		off += n
	}
	return spans, nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID) error {
	spans, err := tokenSpans(tokens, file)
	if err != nil {
		return err
	}
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(spans[i])
		if _, err := fmt.Fprintf(w, "%3d: %-22s %q at %d:%d-%d:%d\n",
			i+1, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, file source.FileID) error {
	spans, err := tokenSpans(tokens, file)
	if err != nil {
		return err
	}
	output := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		output[i] = TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: spans[i],
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
