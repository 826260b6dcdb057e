package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"csfix/internal/diag"
	"csfix/internal/source"
)

func oneDiagnostic(fs *source.FileSet, path, content string, sev diag.Severity, code diag.Code, start, end uint32, msg string) *diag.Bag {
	fileID := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{File: fileID, Start: start, End: end},
	})
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	bag := oneDiagnostic(fs, "/home/user/project/src/test.php", "<?php $x = \"unterminated\n",
		diag.SevError, diag.LexUnterminatedString, 11, 25, "Unterminated string literal")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.php:1:12"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.php:1:12"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.php:1:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode, BaseDir: "/home/user/project"})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: Unterminated string literal") {
				t.Errorf("Expected header in output, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.php", expected: "test.php:1:7"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.php", expected: "file.php:1:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			bag := oneDiagnostic(fs, tt.path, "<?php § = 42;\n", diag.SevWarning, diag.LexUnknownChar, 6, 8, "Test warning")

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
			if strings.Contains(output, "/very/") {
				t.Errorf("long path was not shortened:\n%s", output)
			}
		})
	}
}

func TestPrettySnippetUnderline(t *testing.T) {
	fs := source.NewFileSet()
	bag := oneDiagnostic(fs, "a.php", "<?php\nfoo(1;\n", diag.SevWarning, diag.FixUnmatchedBracket, 9, 10, "unmatched")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "a.php:2:4: WARNING FIX2001: unmatched\n" +
		"2 | foo(1;\n" +
		"       ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.php", []byte("<?php use A, B;\n"))

	bag := diag.NewBag(4)
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.FixRegionSkipped,
		source.Span{File: fileID, Start: 6, End: 9}, "skipped").
		WithNote(source.Span{File: fileID, Start: 13, End: 14}, "second import").
		Emit()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: test.php:1:14: second import") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden unless requested:\n%s", buf.String())
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadError, Message: "boom", Primary: source.Span{File: 7}})

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: boom\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
