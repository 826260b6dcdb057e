package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"csfix/internal/config"
	"csfix/internal/rules"
	"csfix/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show csfix build information",
	Long: `Version prints the csfix version. With --full it also reports the
rule catalogue and the profile a fix run in the current directory would use.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show build metadata, the rule catalogue and the active profile")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().String("config", "", "config file to report with --full")
	versionCmd.Flags().String("profile", "", "built-in profile to report with --full")
}

// versionSections selects what the report carries.
type versionSections struct {
	hash, message, date bool
	// full adds the catalogue and the profile
	full bool
}

// versionReport is rendered either as text or as JSON.
type versionReport struct {
	Tool       string           `json:"tool"`
	Version    string           `json:"version"`
	GitCommit  string           `json:"git_commit,omitempty"`
	GitMessage string           `json:"git_message,omitempty"`
	BuildDate  string           `json:"build_date,omitempty"`
	Catalogue  *catalogueReport `json:"catalogue,omitempty"`
	Profile    *profileReport   `json:"profile,omitempty"`
}

type catalogueReport struct {
	Rules    int      `json:"rules"`
	Profiles []string `json:"profiles"`
}

type profileReport struct {
	Name string `json:"name"`
	// Source is the config path, empty for built-ins.
	Source    string   `json:"source,omitempty"`
	Level     string   `json:"level"`
	Rules     []string `json:"rules"`
	Signature string   `json:"cache_signature"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	var sec versionSections
	for name, dst := range map[string]*bool{
		"hash": &sec.hash, "message": &sec.message, "date": &sec.date, "full": &sec.full,
	} {
		if *dst, err = flags.GetBool(name); err != nil {
			return err
		}
	}

	var prof *resolvedProfile
	if sec.full {
		var pf profileFlags
		if pf.configPath, err = flags.GetString("config"); err != nil {
			return err
		}
		if pf.profile, err = flags.GetString("profile"); err != nil {
			return err
		}
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if prof, err = resolveProfile(pf, wd); err != nil {
			return err
		}
	}

	report := buildVersionReport(sec, prof)
	if format == "json" {
		return renderVersionJSON(cmd.OutOrStdout(), report)
	}
	shown := report.Version
	if useColor(cmd, stdoutFile(cmd)) {
		shown = colorVersion(report.Version)
	}
	renderVersionPretty(cmd.OutOrStdout(), report, shown)
	return nil
}

// buildVersionReport reads the link-time metadata. prof is only consulted
// with full set.
func buildVersionReport(sec versionSections, prof *resolvedProfile) versionReport {
	r := versionReport{
		Tool:    "csfix",
		Version: strings.TrimSpace(version.Version),
	}
	if r.Version == "" {
		r.Version = "dev"
	}
	if sec.hash || sec.full {
		r.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if sec.message || sec.full {
		r.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if sec.date || sec.full {
		r.BuildDate = valueOrUnknown(version.BuildDate)
	}
	if !sec.full {
		return r
	}

	r.Catalogue = &catalogueReport{
		Rules:    len(rules.Catalogue()),
		Profiles: config.BuiltinNames(),
	}
	if prof != nil {
		names := make([]string, 0, len(prof.rules))
		for _, rl := range prof.rules {
			names = append(names, rl.Name())
		}
		r.Profile = &profileReport{
			Name:      prof.profile.Name,
			Source:    prof.profile.Path,
			Level:     prof.profile.Level.String(),
			Rules:     names,
			Signature: prof.signature()[:12],
		}
	}
	return r
}

// colorVersion colours v only when it is the linked version.
func colorVersion(v string) string {
	if v != strings.TrimSpace(version.Version) {
		return v
	}
	return version.Colored()
}

func renderVersionPretty(out io.Writer, r versionReport, shown string) {
	fmt.Fprintf(out, "%s %s\n", r.Tool, shown)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-9s %s\n", label+":", value)
		}
	}
	field("commit", r.GitCommit)
	field("message", r.GitMessage)
	field("built", r.BuildDate)
	if c := r.Catalogue; c != nil {
		field("rules", fmt.Sprintf("%d built-in", c.Rules))
		field("profiles", strings.Join(c.Profiles, ", "))
	}
	if p := r.Profile; p != nil {
		source := p.Source
		if source == "" {
			source = "built-in"
		}
		field("profile", fmt.Sprintf("%s (%s)", p.Name, source))
		field("level", p.Level)
		field("enabled", fmt.Sprintf("%d: %s", len(p.Rules), strings.Join(p.Rules, ", ")))
		field("cache", p.Signature)
	}
}

func renderVersionJSON(out io.Writer, r versionReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
