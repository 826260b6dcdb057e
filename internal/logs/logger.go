// Package logs builds the process logger: a text handler on the terminal
// and the systemd journal when running as a service.
package logs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var ErrUnknownLevel = errors.New("unknown log level")

// Level is shared by every logger built by New, so the level can be
// changed after construction (--log-level is parsed after init).
var Level = new(slog.LevelVar)

func init() {
	Level.Set(slog.LevelWarn)
}

// SetLevel parses "debug", "info", "warn" or "error".
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return fmt.Errorf("%w %q", ErrUnknownLevel, name)
	}
	Level.Set(l)
	return nil
}

// Options control New.
type Options struct {
	// Writer receives terminal output; defaults to os.Stderr.
	Writer io.Writer
	// Journal enables the systemd journal handler. When nil it is enabled
	// only when the process runs inside a systemd service.
	Journal *bool
}

// New returns a logger fanning records out to every configured handler.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	journal := isSystemdService()
	if opts.Journal != nil {
		journal = *opts.Journal
	}

	var handlers []slog.Handler

	// в сервисе пишем только в журнал
	var terminal slog.Handler
	if !journal || opts.Writer != nil {
		terminal = slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level})
		handlers = append(handlers, terminal)
	}

	if journal {
		jh, err := slogjournal.NewHandler(&slogjournal.Options{
			Level:        Level,
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminal != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = terminal.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, jh)
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
