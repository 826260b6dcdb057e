package diagfmt

import (
	"encoding/json"
	"testing"

	"csfix/internal/diag"
	"csfix/internal/source"
)

func TestBuildDiagnosticsPositions(t *testing.T) {
	fs := source.NewFileSet()
	bag := oneDiagnostic(fs, "test.php", "<?php\n$x = \"unterminated\n", diag.SevError, diag.LexUnterminatedString, 11, 25, "Unterminated string literal")

	got := BuildDiagnostics(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if len(got) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", got)
	}
	d := got[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Title != "Unterminated string literal" {
		t.Errorf("unexpected severity/code %s %s %q", d.Severity, d.Code, d.Title)
	}
	loc := d.Location
	if loc.File != "test.php" || loc.Start == nil || loc.Start.Line != 2 || loc.Start.Col != 6 || loc.Bytes[0] != 11 {
		t.Errorf("unexpected location %+v", loc)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back DiagnosticJSON
	if err := json.Unmarshal(data, &back); err != nil || back.Location.End == nil {
		t.Fatalf("round trip lost end position: %s", data)
	}
}

func TestBuildDiagnosticsMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.php", []byte("<?php\n"))
	bag := diag.NewBag(0)
	for range 5 {
		bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.FixInfo, Primary: source.Span{File: fileID}})
	}

	got := BuildDiagnostics(bag, fs, JSONOpts{Max: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(got))
	}
	if got[0].Location.Start != nil {
		t.Fatalf("positions must be omitted unless requested: %+v", got[0].Location)
	}
	if BuildDiagnostics(nil, fs, JSONOpts{}) != nil {
		t.Fatal("nil bag should produce no diagnostics")
	}
}
