package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"csfix/internal/cache"
	"csfix/internal/config"
	"csfix/internal/rule"
	"csfix/internal/rules"
	"csfix/internal/runner"
)

// profileFlags are the command-line overrides of a profile.
type profileFlags struct {
	configPath string
	profile    string
	level      string
	rules      []string
	paths      []string
}

// resolvedProfile is a validated profile with its selected rules.
type resolvedProfile struct {
	profile  config.Profile
	registry *rule.Registry
	rules    []rule.Rule
}

// loadProfile picks the profile: an explicit --config file, a named
// built-in, a discovered config file, or the default built-in.
func loadProfile(flags profileFlags, workDir string) (config.Profile, error) {
	if flags.configPath != "" && flags.profile != "" {
		return config.Profile{}, errors.New("--config and --profile are mutually exclusive")
	}
	switch {
	case flags.configPath != "":
		return config.Load(flags.configPath)
	case flags.profile != "":
		return config.Builtin(flags.profile)
	}
	path, ok, err := config.Discover(workDir)
	if err != nil {
		return config.Profile{}, err
	}
	if ok {
		logger.Debug("config discovered", "path", path)
		return config.Load(path)
	}
	return config.Builtin("default")
}

// resolveProfile applies flag overrides on top of the loaded profile and
// selects rules.
func resolveProfile(flags profileFlags, workDir string) (*resolvedProfile, error) {
	p, err := loadProfile(flags, workDir)
	if err != nil {
		return nil, err
	}
	if flags.level != "" {
		lvl, err := rule.ParseLevel(flags.level)
		if err != nil {
			return nil, err
		}
		p.Level = lvl
	}
	if len(flags.rules) > 0 {
		p.SetRules(flags.rules)
	}
	if len(flags.paths) > 0 {
		p.Finder.Paths = flags.paths
	}

	reg, err := p.Registry(rules.Catalogue())
	if err != nil {
		return nil, err
	}
	if err := p.Validate(reg); err != nil {
		return nil, err
	}
	return &resolvedProfile{
		profile:  p,
		registry: reg,
		rules:    reg.Select(p.Selection()),
	}, nil
}

func (r *resolvedProfile) maxPasses() int {
	if r.profile.MaxPasses > 0 {
		return r.profile.MaxPasses
	}
	return runner.DefaultMaxPasses
}

// signature keys the cache. Custom rules contribute their script hash so
// that editing a script invalidates cached results.
func (r *resolvedProfile) signature() string {
	names := make([]string, 0, len(r.rules))
	for _, rl := range r.rules {
		names = append(names, rl.Name())
	}
	for _, cr := range r.profile.CustomRules {
		// #nosec G304 -- script path comes from the user's config
		data, err := os.ReadFile(cr.Script)
		if err != nil {
			continue
		}
		sum := sha256.Sum256(data)
		names = append(names, cr.Name+"@"+hex.EncodeToString(sum[:8]))
	}
	return cache.Signature(names, r.profile.Level, r.maxPasses())
}

// cachePath places the cache next to the config file, or in workDir for
// built-in profiles.
func (r *resolvedProfile) cachePath(workDir string) string {
	if r.profile.Path != "" {
		return filepath.Join(filepath.Dir(r.profile.Path), cache.FileName)
	}
	return filepath.Join(workDir, cache.FileName)
}

func (r *resolvedProfile) String() string {
	name := r.profile.Name
	if r.profile.Path != "" {
		name = fmt.Sprintf("%s (%s)", name, r.profile.Path)
	}
	return fmt.Sprintf("%s, level %s, %d rules", name, r.profile.Level, len(r.rules))
}
