package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"csfix/internal/rule"
	"csfix/internal/runner"
)

// FileNames are probed in order in every directory during discovery.
var FileNames = []string{".csfix.toml", ".csfix.yaml", ".csfix.yml"}

type fileConfig struct {
	Name        string             `toml:"name" yaml:"name"`
	Description string             `toml:"description" yaml:"description"`
	Level       any                `toml:"level" yaml:"level"`
	Rules       []string           `toml:"rules" yaml:"rules"`
	MaxPasses   *int               `toml:"max_passes" yaml:"max_passes"`
	Finder      finderConfig       `toml:"finder" yaml:"finder"`
	CustomRules []customRuleConfig `toml:"custom_rule" yaml:"custom_rule"`
}

type finderConfig struct {
	Paths    []string `toml:"paths" yaml:"paths"`
	Include  []string `toml:"include" yaml:"include"`
	Exclude  []string `toml:"exclude" yaml:"exclude"`
	SkipDirs []string `toml:"skip_dirs" yaml:"skip_dirs"`
}

type customRuleConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Script      string `toml:"script" yaml:"script"`
	Description string `toml:"description" yaml:"description"`
	Level       any    `toml:"level" yaml:"level"`
	Priority    int    `toml:"priority" yaml:"priority"`
}

// Discover walks up from startDir looking for a configuration file.
func Discover(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a profile file. The format follows the extension; relative
// finder paths and scripts are resolved against the file's directory.
func Load(path string) (Profile, error) {
	var (
		cfg     fileConfig
		defined func(keys ...string) bool
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Profile{}, fmt.Errorf("%s: %w: unknown key %q", path, ErrBadConfig, undecoded[0].String())
		}
		defined = meta.IsDefined
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", path, err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Profile{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Profile{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		defined = func(keys ...string) bool {
			_, ok := raw[keys[0]]
			return ok
		}
	default:
		return Profile{}, fmt.Errorf("%s: %w: unsupported extension %q", path, ErrBadConfig, ext)
	}

	p, err := cfg.resolve(filepath.Dir(path), defined)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

func (c fileConfig) resolve(base string, defined func(keys ...string) bool) (Profile, error) {
	p, _ := Builtin("default")
	if name := strings.TrimSpace(c.Name); name != "" {
		p.Name = name
	}
	if c.Description != "" {
		p.Description = c.Description
	}
	if defined("level") {
		level, err := parseLevelValue(c.Level)
		if err != nil {
			return Profile{}, err
		}
		p.Level = level
	}
	p.SetRules(c.Rules)
	if c.MaxPasses != nil {
		p.MaxPasses = *c.MaxPasses
	}
	if p.MaxPasses == 0 {
		p.MaxPasses = runner.DefaultMaxPasses
	}

	p.Finder = Finder{
		Paths:    resolvePaths(base, c.Finder.Paths),
		Include:  c.Finder.Include,
		Exclude:  c.Finder.Exclude,
		SkipDirs: c.Finder.SkipDirs,
	}

	seen := make(map[string]bool, len(c.CustomRules))
	for i, cr := range c.CustomRules {
		name := strings.TrimSpace(cr.Name)
		if name == "" || strings.TrimSpace(cr.Script) == "" {
			return Profile{}, fmt.Errorf("%w: custom_rule #%d needs name and script", ErrBadCustomRule, i+1)
		}
		if seen[name] {
			return Profile{}, fmt.Errorf("%w: %q", rule.ErrDuplicateRule, name)
		}
		seen[name] = true

		level := rule.Contrib
		if cr.Level != nil {
			l, err := parseLevelValue(cr.Level)
			if err != nil {
				return Profile{}, fmt.Errorf("custom rule %q: %w", name, err)
			}
			level = l
		}
		p.CustomRules = append(p.CustomRules, CustomRule{
			Name:        name,
			Script:      resolvePath(base, cr.Script),
			Description: cr.Description,
			Level:       level,
			Priority:    cr.Priority,
		})
	}
	return p, nil
}

// parseLevelValue accepts "psr2", "psr2|contrib" or ["psr2", "contrib"].
func parseLevelValue(v any) (rule.Level, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		return rule.ParseLevel(v)
	case []any:
		names := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return 0, fmt.Errorf("%w: level entries must be strings, got %T", ErrBadConfig, e)
			}
			names = append(names, s)
		}
		return rule.ParseLevels(names)
	case []string:
		return rule.ParseLevels(v)
	}
	return 0, fmt.Errorf("%w: level must be a string or a list, got %T", ErrBadConfig, v)
}

func resolvePaths(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(base, p)
	}
	return out
}

func resolvePath(base, p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
