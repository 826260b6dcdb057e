package runner

import (
	"log/slog"

	"csfix/internal/diag"
)

// Options configures a Runner.
type Options struct {
	MaxPasses int
	Reporter  diag.Reporter
	Logger    *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithMaxPasses overrides the pass cap. Values below 1 keep the default.
func WithMaxPasses(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxPasses = n
		}
	}
}

// WithReporter collects diagnostics emitted by rules.
func WithReporter(rep diag.Reporter) Option {
	return func(o *Options) { o.Reporter = rep }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		MaxPasses: DefaultMaxPasses,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
