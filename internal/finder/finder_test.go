package finder

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("<?php\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestFilesDefaults(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.php", "a.php", "view.twig", "notes.txt",
		"src/Foo.php", "src/test.phpt",
		"vendor/lib/X.php", ".git/hooks/h.php", ".idea/x.php", "node_modules/y.php",
	)

	got, err := New(root).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"a.php", "b.php", "src/Foo.php", "src/test.phpt", "view.twig"}
	if r := rel(t, root, got); !slices.Equal(r, want) {
		t.Fatalf("files = %v, want %v", r, want)
	}
}

func TestFilesIncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.php", "a.inc", "gen/x.php", "src/y.php", "src/skip.php")

	f := &Finder{
		Roots:   []string{root},
		Include: []string{"*.php", "*.inc"},
		Exclude: []string{"gen", "src/skip.php"},
	}
	got, err := f.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"a.inc", "a.php", "src/y.php"}
	if r := rel(t, root, got); !slices.Equal(r, want) {
		t.Fatalf("files = %v, want %v", r, want)
	}
}

func TestFilesExplicitFileRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "script", "a.php")
	script := filepath.Join(root, "script")

	got, err := New(script, root, script).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"script", "a.php"}
	if r := rel(t, root, got); !slices.Equal(r, want) {
		t.Fatalf("files = %v, want %v", r, want)
	}
}

func TestFilesRestartable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.php", "b.php")
	f := New(root)

	first, _ := f.Collect()
	second, _ := f.Collect()
	if !slices.Equal(first, second) || len(first) != 2 {
		t.Fatalf("walks differ: %v vs %v", first, second)
	}

	// early break must not panic or keep walking
	n := 0
	for range f.Files() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected one file before break, got %d", n)
	}
}

func TestBadRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	f := New(missing)
	if err := f.Check(); !errors.Is(err, ErrBadRoot) {
		t.Fatalf("Check: expected ErrBadRoot, got %v", err)
	}
	_, err := f.Collect()
	if !errors.Is(err, ErrBadRoot) {
		t.Fatalf("Collect: expected ErrBadRoot, got %v", err)
	}
}

func TestFilesExcludeDoubleStar(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"tests/Unit/Fixtures/bad.php", "tests/Unit/FooTest.php",
		"tests/Fixtures/top.php", "src/Fixtures/keep.php", "src/a.generated.php",
	)

	f := &Finder{
		Roots:   []string{root},
		Exclude: []string{"tests/**/Fixtures", "*.generated.php"},
	}
	got, err := f.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"src/Fixtures/keep.php", "tests/Unit/FooTest.php"}
	if r := rel(t, root, got); !slices.Equal(r, want) {
		t.Fatalf("files = %v, want %v", r, want)
	}
}

func TestCheckBadPattern(t *testing.T) {
	f := &Finder{Roots: []string{t.TempDir()}, Exclude: []string{"src/[a-"}}
	if err := f.Check(); !errors.Is(err, ErrBadPattern) {
		t.Fatalf("Check: expected ErrBadPattern, got %v", err)
	}
}
