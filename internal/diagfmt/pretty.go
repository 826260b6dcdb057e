package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"

	"csfix/internal/diag"
	"csfix/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	gutterColor  = color.New(color.FgHiBlack)
)

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		header := fmt.Sprintf("%s %s", paint(severityColor(d.Severity), opts.Color, d.Severity.String()), d.Code.ID())
		loc := location(fs, d.Primary, opts)
		if loc != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", loc, header, d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", header, d.Message)
		}
		writeSnippet(w, fs, d.Primary, opts)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			prefix := paint(noteColor, opts.Color, "note")
			if nl := location(fs, n.Span, opts); nl != "" {
				fmt.Fprintf(w, "  %s: %s: %s\n", prefix, nl, n.Msg)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", prefix, n.Msg)
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", n)
	}
}

func location(fs *source.FileSet, span source.Span, opts PrettyOpts) string {
	path := filePath(fs, span, opts.PathMode, opts.BaseDir)
	if path == "" {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSnippet prints the primary line with Context lines around it and a
// caret underline below the primary line.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if fs == nil {
		return
	}
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return
	}
	last = min(last, lines)

	width := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\r")
		gutter := paint(gutterColor, opts.Color, fmt.Sprintf("%*d |", width, ln))
		fmt.Fprintf(w, "%s %s\n", gutter, text)
		if ln != start.Line {
			continue
		}
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			n = int(end.Col - start.Col)
		}
		marker := "^" + strings.Repeat("~", n-1)
		pad := strings.Repeat(" ", width+2) + caretIndent(text, int(start.Col)-1)
		fmt.Fprintf(w, "%s %s\n", pad, paint(severityColor(diag.SevError), opts.Color, marker))
	}
}

// caretIndent keeps tabs so the caret lines up under the source text.
func caretIndent(line string, col int) string {
	col = min(col, len(line))
	var sb strings.Builder
	for i := range col {
		if line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
