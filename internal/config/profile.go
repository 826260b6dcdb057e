// Package config loads fixing profiles: which rules run, at which level,
// over which files. Profiles come from .csfix.toml / .csfix.yaml files or
// from the built-in set.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"csfix/internal/rule"
	"csfix/internal/runner"
)

var (
	ErrEmptyLevel     = errors.New("profile selects no rules: empty level")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrBadConfig      = errors.New("invalid configuration")
	ErrBadCustomRule  = errors.New("invalid custom rule")
)

// Profile is a resolved configuration.
type Profile struct {
	Name        string
	Description string
	Level       rule.Level
	// Enable and Disable hold the "rules" list split on the "-" prefix.
	Enable      []string
	Disable     []string
	MaxPasses   int
	Finder      Finder
	CustomRules []CustomRule
	// Path is the file the profile was read from, "" for built-ins.
	Path string
}

// Finder selects input files.
type Finder struct {
	Paths    []string
	Include  []string
	Exclude  []string
	SkipDirs []string
}

// CustomRule is a starlark script providing fix(path, text).
type CustomRule struct {
	Name        string
	Script      string
	Description string
	Level       rule.Level
	Priority    int
}

var builtins = map[string]Profile{
	"default": {
		Name:        "default",
		Description: "A default configuration",
		Level:       rule.All,
	},
	"psr2": {
		Name:        "psr2",
		Description: "PSR-0, PSR-1 and PSR-2 rules",
		Level:       rule.PSR2,
	},
	"contrib": {
		Name:        "contrib",
		Description: "Contributed and custom rules only",
		Level:       rule.Contrib,
	},
}

// Builtin returns a named built-in profile.
func Builtin(name string) (Profile, error) {
	p, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownProfile, name, strings.Join(BuiltinNames(), ", "))
	}
	p.MaxPasses = runner.DefaultMaxPasses
	return p, nil
}

// BuiltinNames lists built-in profile names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Selection converts the profile into a registry selection.
func (p Profile) Selection() rule.Selection {
	return rule.Selection{Level: p.Level, Enable: p.Enable, Disable: p.Disable}
}

// SetRules replaces Enable/Disable from a "rules" list where "-name"
// disables a rule.
func (p *Profile) SetRules(names []string) {
	p.Enable, p.Disable = nil, nil
	for _, n := range names {
		n = strings.TrimSpace(n)
		switch {
		case n == "":
		case strings.HasPrefix(n, "-"):
			p.Disable = append(p.Disable, strings.TrimPrefix(n, "-"))
		default:
			p.Enable = append(p.Enable, strings.TrimPrefix(n, "+"))
		}
	}
}

// Validate checks the profile against the registry it will select from.
func (p Profile) Validate(reg *rule.Registry) error {
	if p.Level == 0 && len(p.Enable) == 0 {
		return fmt.Errorf("profile %q: %w", p.Name, ErrEmptyLevel)
	}
	if p.MaxPasses < 0 {
		return fmt.Errorf("profile %q: %w: max_passes must not be negative", p.Name, ErrBadConfig)
	}
	if err := reg.Validate(p.Selection()); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// Registry returns the built-in catalogue extended with the profile's
// custom rules.
func (p Profile) Registry(builtin []rule.Rule) (*rule.Registry, error) {
	reg := rule.NewRegistry()
	if err := reg.Register(builtin...); err != nil {
		return nil, err
	}
	for _, cr := range p.CustomRules {
		r, err := LoadScriptRule(cr)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(r); err != nil {
			return nil, fmt.Errorf("custom rule %q: %w", cr.Name, err)
		}
	}
	return reg, nil
}
