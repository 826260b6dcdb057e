package textdiff

import (
	"strings"
	"testing"
)

func TestUnifiedEqual(t *testing.T) {
	if got := Unified("a.php", "x\n", "x\n"); got != "" {
		t.Fatalf("expected empty diff, got %q", got)
	}
}

func TestUnified(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		want          string
	}{
		{
			name:   "replace",
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want:   "--- a/f\n+++ b/f\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n",
		},
		{
			name:   "append",
			before: "a\n",
			after:  "a\nb\n",
			want:   "--- a/f\n+++ b/f\n@@ -1 +1,2 @@\n a\n+b\n",
		},
		{
			name:   "from empty",
			before: "",
			after:  "a\n",
			want:   "--- a/f\n+++ b/f\n@@ -0,0 +1 @@\n+a\n",
		},
		{
			name:   "missing newline",
			before: "a",
			after:  "a\n",
			want:   "--- a/f\n+++ b/f\n@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unified("f", tt.before, tt.after); got != tt.want {
				t.Fatalf("diff mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestUnifiedSplitsDistantHunks(t *testing.T) {
	var before, after strings.Builder
	for i := range 20 {
		line := string(rune('a'+i)) + "\n"
		before.WriteString(line)
		if i == 1 || i == 18 {
			line = strings.ToUpper(line)
		}
		after.WriteString(line)
	}
	got := Unified("f", before.String(), after.String())
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Fatalf("expected 2 hunks, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "@@ -1,5 +1,5 @@") || !strings.Contains(got, "@@ -16,5 +16,5 @@") {
		t.Fatalf("unexpected hunk headers:\n%s", got)
	}
}

func TestStat(t *testing.T) {
	diff := Unified("f", "a\nb\nc\n", "a\nB\nc\nd\n")
	added, removed := Stat(diff)
	if added != 2 || removed != 1 {
		t.Fatalf("Stat = +%d -%d, want +2 -1\n%s", added, removed, diff)
	}
	// removed SQL comment lines look like file headers
	if a, r := Stat(Unified("q.sql", "-- x\nselect 1;\n", "select 1;\n")); a != 0 || r != 1 {
		t.Fatalf("Stat of a removed \"-- \" line = +%d -%d, want +0 -1", a, r)
	}
	if a, r := Stat(""); a != 0 || r != 0 {
		t.Fatalf("Stat of empty diff = +%d -%d", a, r)
	}
}
