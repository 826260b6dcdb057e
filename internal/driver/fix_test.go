package driver

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"csfix/internal/cache"
	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/runner"
	"csfix/internal/source"
)

func replacer(name, from, to string) rule.Rule {
	return &rule.Func{
		RuleName:   name,
		RuleLevel:  rule.All,
		Extensions: []string{".php"},
		Apply: func(_ *source.File, text string, _ diag.Reporter) string {
			return strings.ReplaceAll(text, from, to)
		},
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func paths(list ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range list {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFixPathsWritesChanges(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.php": "<?php bad();\n",
		"b.php": "<?php good();\n",
	})
	a, b := filepath.Join(dir, "a.php"), filepath.Join(dir, "b.php")

	report, err := FixPaths(context.Background(), paths(a, b), Options{
		Rules: []rule.Rule{replacer("good", "bad", "good")},
		Jobs:  2,
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	ra, rb := report.Results[0], report.Results[1]
	if ra.Path != a || ra.Status != FileFixed || len(ra.Applied) != 1 || ra.Applied[0] != "good" {
		t.Fatalf("unexpected result for a: %+v", ra)
	}
	if rb.Path != b || rb.Status != FileUnchanged {
		t.Fatalf("unexpected result for b: %+v", rb)
	}
	if got := readFile(t, a); got != "<?php good();\n" {
		t.Fatalf("a.php not fixed: %q", got)
	}
	if report.ExitCode() != 0 {
		t.Fatalf("expected exit code 0, got %d", report.ExitCode())
	}
	fixed, unchanged, failed := report.Counts()
	if fixed != 1 || unchanged != 1 || failed != 0 {
		t.Fatalf("counts = %d/%d/%d", fixed, unchanged, failed)
	}
}

func TestFixPathsDryRunKeepsFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php bad();\n"})
	a := filepath.Join(dir, "a.php")

	report, err := FixPaths(context.Background(), paths(a), Options{
		Rules:  []rule.Rule{replacer("good", "bad", "good")},
		DryRun: true,
		Diff:   true,
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	res := report.Results[0]
	if res.Status != FileFixed {
		t.Fatalf("expected fixed, got %s", res.Status)
	}
	if !strings.Contains(res.Diff, "-<?php bad();") || !strings.Contains(res.Diff, "+<?php good();") {
		t.Fatalf("unexpected diff:\n%s", res.Diff)
	}
	if got := readFile(t, a); got != "<?php bad();\n" {
		t.Fatalf("dry run modified file: %q", got)
	}
	if report.ExitCode() != 1 {
		t.Fatalf("dry run with changes must exit 1, got %d", report.ExitCode())
	}
}

func TestFixPathsUsesCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php bad();\n"})
	a := filepath.Join(dir, "a.php")
	cachePath := filepath.Join(dir, cache.FileName)

	var calls int
	var mu sync.Mutex
	counting := &rule.Func{
		RuleName:  "counting",
		RuleLevel: rule.All,
		Apply: func(_ *source.File, text string, _ diag.Reporter) string {
			mu.Lock()
			calls++
			mu.Unlock()
			return strings.ReplaceAll(text, "bad", "good")
		},
	}

	run := func() FileResult {
		t.Helper()
		c, err := cache.Open(cachePath, "sig")
		if err != nil {
			t.Fatalf("open cache: %v", err)
		}
		report, err := FixPaths(context.Background(), paths(a), Options{
			Rules: []rule.Rule{counting},
			Cache: c,
		})
		if err != nil {
			t.Fatalf("FixPaths: %v", err)
		}
		if err := c.Save(); err != nil {
			t.Fatalf("save cache: %v", err)
		}
		return report.Results[0]
	}

	if res := run(); res.Status != FileFixed || res.Cached {
		t.Fatalf("first run: %+v", res)
	}
	before := calls
	res := run()
	if res.Status != FileUnchanged || !res.Cached {
		t.Fatalf("second run should hit the cache: %+v", res)
	}
	if calls != before {
		t.Fatalf("cached file was fixed again")
	}
}

func TestFixPathsNonConvergence(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php a\n"})
	a := filepath.Join(dir, "a.php")
	flip := &rule.Func{
		RuleName:  "flip",
		RuleLevel: rule.All,
		Apply: func(_ *source.File, text string, _ diag.Reporter) string {
			if strings.Contains(text, " a") {
				return strings.Replace(text, " a", " b", 1)
			}
			return strings.Replace(text, " b", " a", 1)
		},
	}

	report, err := FixPaths(context.Background(), paths(a), Options{
		Rules:     []rule.Rule{flip},
		MaxPasses: 3,
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	res := report.Results[0]
	if res.Status != FileFailed || res.Stable {
		t.Fatalf("expected unstable failure, got %+v", res)
	}
	if !errors.Is(res.Err, runner.ErrNotConverged) {
		t.Fatalf("expected ErrNotConverged, got %v", res.Err)
	}
	if got := readFile(t, a); got != "<?php a\n" {
		t.Fatalf("unstable output was written: %q", got)
	}
	if !res.Diagnostics.HasErrors() {
		t.Fatalf("expected a non-convergence diagnostic")
	}
	if report.ExitCode() != 1 {
		t.Fatalf("failures must exit 1")
	}
}

func TestFixPathsMissingFileDoesNotAbortBatch(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php bad();\n"})
	a := filepath.Join(dir, "a.php")
	missing := filepath.Join(dir, "missing.php")

	report, err := FixPaths(context.Background(), paths(missing, a), Options{
		Rules: []rule.Rule{replacer("good", "bad", "good")},
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if res := report.Results[0]; res.Status != FileFailed || !errors.Is(res.Err, os.ErrNotExist) {
		t.Fatalf("expected load failure, got %+v", res)
	}
	items := report.Results[0].Diagnostics.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadError {
		t.Fatalf("expected IO load diagnostic, got %+v", items)
	}
	if res := report.Results[1]; res.Status != FileFixed {
		t.Fatalf("second file should still be fixed, got %+v", res)
	}
}

func TestFixPathsWalkError(t *testing.T) {
	walkErr := errors.New("permission denied")
	files := func(yield func(string, error) bool) {
		yield("", walkErr)
	}
	report, err := FixPaths(context.Background(), files, Options{})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if len(report.Results) != 1 || !errors.Is(report.Results[0].Err, walkErr) {
		t.Fatalf("walk error not reported: %+v", report.Results)
	}
}

func TestFixPathsProgressEvents(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.php": "<?php bad();\n",
		"b.php": "<?php ok();\n",
	})
	a, b := filepath.Join(dir, "a.php"), filepath.Join(dir, "b.php")

	events := make(chan Event, 64)
	_, err := FixPaths(context.Background(), paths(a, b), Options{
		Rules:    []rule.Rule{replacer("good", "bad", "good")},
		Progress: ChannelSink{Ch: events},
	})
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	close(events)

	queued, done := 0, 0
	lastStage := make(map[string]Stage)
	for evt := range events {
		switch evt.Status {
		case StatusQueued:
			queued++
		case StatusDone:
			done++
			lastStage[evt.File] = evt.Stage
		}
	}
	if queued != 2 || done != 2 {
		t.Fatalf("queued=%d done=%d", queued, done)
	}
	if lastStage[a] != StageWrite || lastStage[b] != StageFix {
		t.Fatalf("unexpected final stages %v", lastStage)
	}
}

func TestFixPathsCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php bad();\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := FixPaths(ctx, paths(filepath.Join(dir, "a.php")), Options{
		Rules: []rule.Rule{replacer("good", "bad", "good")},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res := report.Results[0]; res.Status != FileFailed {
		t.Fatalf("unscheduled file should be failed, got %+v", res)
	}
}

func TestTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.php": "<?php echo 'x';\n"})
	res, err := Tokenize(filepath.Join(dir, "a.php"), TokenizeOptions{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var sb strings.Builder
	for _, tok := range res.Tokens {
		sb.WriteString(tok.Text)
	}
	if sb.String() != "<?php echo 'x';\n" {
		t.Fatalf("tokens are not lossless: %q", sb.String())
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}

	if _, err := Tokenize(filepath.Join(dir, "missing.php"), TokenizeOptions{}); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
