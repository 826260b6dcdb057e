package logs

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesToTerminal(t *testing.T) {
	defer Level.Set(Level.Level())
	Level.Set(slog.LevelInfo)

	var buf bytes.Buffer
	off := false
	logger := New(Options{Writer: &buf, Journal: &off})
	logger.Info("fixed", "path", "a.php")
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "msg=fixed") || !strings.Contains(out, "path=a.php") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked at info level: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	defer Level.Set(Level.Level())

	if err := SetLevel("debug"); err != nil || Level.Level() != slog.LevelDebug {
		t.Fatalf("SetLevel(debug) = %v, level %v", err, Level.Level())
	}
	if err := SetLevel("loud"); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("file.path-x"); got != "FILE_PATH_X" {
		t.Errorf("toJournalKey = %q", got)
	}
}
