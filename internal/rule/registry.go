package rule

import (
	"errors"
	"fmt"
	"sort"

	"csfix/internal/source"
)

var (
	ErrDuplicateRule = errors.New("duplicate rule name")
	ErrUnknownRule   = errors.New("unknown rule")
)

// Registry holds rules in registration order. Names are unique.
type Registry struct {
	rules  []Rule
	byName map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds rules in order. A name already present is an error and
// nothing after it is added.
func (r *Registry) Register(rules ...Rule) error {
	for _, rl := range rules {
		name := rl.Name()
		if _, ok := r.byName[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
		}
		r.byName[name] = len(r.rules)
		r.rules = append(r.rules, rl)
	}
	return nil
}

// MustRegister is Register for static catalogues.
func (r *Registry) MustRegister(rules ...Rule) {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
}

// All returns rules in registration order.
func (r *Registry) All() []Rule {
	return append([]Rule(nil), r.rules...)
}

func (r *Registry) Get(name string) (Rule, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

func (r *Registry) Len() int { return len(r.rules) }

// Selection decides which registered rules take part in a run.
type Selection struct {
	Level   Level
	Enable  []string // включаются независимо от уровня
	Disable []string
}

// Validate checks that every named rule exists.
func (r *Registry) Validate(sel Selection) error {
	for _, names := range [][]string{sel.Enable, sel.Disable} {
		for _, n := range names {
			if _, ok := r.byName[n]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownRule, n)
			}
		}
	}
	return nil
}

// Select returns the rules active for sel, ordered by priority (higher
// first) with ties kept in registration order.
func (r *Registry) Select(sel Selection) []Rule {
	enabled := toSet(sel.Enable)
	disabled := toSet(sel.Disable)

	out := make([]Rule, 0, len(r.rules))
	for _, rl := range r.rules {
		name := rl.Name()
		if disabled[name] {
			continue
		}
		if enabled[name] || rl.Level().Intersects(sel.Level) {
			out = append(out, rl)
		}
	}
	SortByPriority(out)
	return out
}

// SortByPriority orders rules by descending priority, stable.
func SortByPriority(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority() > rules[j].Priority()
	})
}

// Supported filters rules whose Supports accepts file.
func Supported(rules []Rule, file *source.File) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rl := range rules {
		if rl.Supports(file) {
			out = append(out, rl)
		}
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
