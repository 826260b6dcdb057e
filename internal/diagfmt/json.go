package diagfmt

import (
	"csfix/internal/diag"
	"csfix/internal/source"
)

// PositionJSON is a 1-based line/column pair.
type PositionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON locates a span; Start and End are filled only with
// JSONOpts.IncludePositions.
type LocationJSON struct {
	File  string        `json:"file,omitempty"`
	Bytes [2]uint32     `json:"bytes"`
	Start *PositionJSON `json:"start,omitempty"`
	End   *PositionJSON `json:"end,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:  filePath(fs, span, opts.PathMode, opts.BaseDir),
		Bytes: [2]uint32{span.Start, span.End},
	}
	if !opts.IncludePositions || loc.File == "" {
		return loc
	}
	start, end := fs.Resolve(span)
	loc.Start = &PositionJSON{Line: start.Line, Col: start.Col}
	loc.End = &PositionJSON{Line: end.Line, Col: end.Col}
	return loc
}

// BuildDiagnostics converts at most opts.Max (0: all) diagnostics of bag.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	if len(items) == 0 {
		return nil
	}
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts)})
			}
		}
		out = append(out, dj)
	}
	return out
}
