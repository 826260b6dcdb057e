package runner

import (
	"errors"
	"fmt"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
)

// ErrNotConverged is returned when text still changes after the last
// allowed pass. The accompanying Result holds the last output.
var ErrNotConverged = errors.New("rules did not converge")

// DefaultMaxPasses caps the fixed-point loop.
const DefaultMaxPasses = 10

// State is the lifecycle of one Run.
type State uint8

const (
	StateLoaded State = iota
	StateFiltering
	StateApplying
	StateConverged
	StateIterationCapReached
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFiltering:
		return "filtering"
	case StateApplying:
		return "applying"
	case StateConverged:
		return "converged"
	case StateIterationCapReached:
		return "iteration-cap-reached"
	}
	return "unknown"
}

// Result describes one Run.
type Result struct {
	Text    string
	Changed bool
	// Passes counts full passes, including the final one that changed nothing.
	Passes int
	State  State
	// Applied lists rules that changed the text, in the order they first did.
	Applied []string
}

// Stable reports whether the output is a fixed point of the rule set.
func (r Result) Stable() bool { return r.State == StateConverged }

// Runner applies an ordered rule list until the text stops changing.
type Runner struct {
	rules []rule.Rule
	opts  Options
}

// New orders rules by priority (higher first, ties in the given order)
// and returns a Runner. The caller's slice is not modified.
func New(rules []rule.Rule, opts ...Option) *Runner {
	ordered := append([]rule.Rule(nil), rules...)
	rule.SortByPriority(ordered)
	return &Runner{rules: ordered, opts: buildOptions(opts)}
}

// Rules returns the execution order.
func (r *Runner) Rules() []rule.Rule {
	return append([]rule.Rule(nil), r.rules...)
}

// Run fixes text. Rules not supporting file are skipped. Hitting the pass
// cap returns ErrNotConverged together with the last pass output.
func (r *Runner) Run(file *source.File, text string) (Result, error) {
	res := Result{Text: text, State: StateFiltering}
	active := rule.Supported(r.rules, file)

	var rep diag.Reporter
	if r.opts.Reporter != nil {
		rep = diag.Dedup(r.opts.Reporter)
	}
	log := r.opts.Logger
	if file != nil {
		log = log.With("file", file.Path)
	}

	res.State = StateApplying
	applied := make(map[string]bool)
	current := text
	for pass := 1; pass <= r.opts.MaxPasses; pass++ {
		before := current
		for _, rl := range active {
			out := rl.Fix(file, current, rep)
			if out != current {
				log.Debug("rule changed text", "rule", rl.Name(), "pass", pass)
				if !applied[rl.Name()] {
					applied[rl.Name()] = true
					res.Applied = append(res.Applied, rl.Name())
				}
			}
			current = out
		}
		res.Passes = pass
		if current == before {
			res.State = StateConverged
			break
		}
	}

	res.Text = current
	res.Changed = current != text
	if res.State != StateConverged {
		res.State = StateIterationCapReached
		var span source.Span
		if file != nil {
			span.File = file.ID
		}
		diag.ReportError(rep, diag.RunNotConverged, span,
			fmt.Sprintf("text still changing after %d passes", r.opts.MaxPasses)).Emit()
		log.Warn("rules did not converge", "passes", res.Passes, "applied", res.Applied)
		return res, fmt.Errorf("%w after %d passes", ErrNotConverged, res.Passes)
	}
	log.Debug("converged", "passes", res.Passes, "changed", res.Changed)
	return res, nil
}

// FixString runs rules over text held in no particular file.
func FixString(rules []rule.Rule, text string, opts ...Option) (Result, error) {
	return New(rules, opts...).Run(&source.File{Path: "-", Content: []byte(text)}, text)
}
