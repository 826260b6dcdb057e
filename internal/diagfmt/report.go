package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"csfix/internal/driver"
	"csfix/internal/textdiff"
)

var (
	fixedColor  = color.New(color.FgGreen, color.Bold)
	failedColor = color.New(color.FgRed, color.Bold)
	plainColor  = color.New(color.Faint)
)

// ReportOpts configures the summary of a fix run.
type ReportOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// ShowUnchanged lists unchanged files too.
	ShowUnchanged bool
	// Quiet prints failed files only and no summary.
	Quiet bool
	// Context for diagnostic snippets.
	Context int8
}

// ReportText prints one line per file, then its diff and diagnostics, and a
// closing summary line.
func ReportText(w io.Writer, report *driver.Report, opts ReportOpts) error {
	pretty := PrettyOpts{
		Color:     opts.Color,
		Context:   opts.Context,
		PathMode:  opts.PathMode,
		BaseDir:   opts.BaseDir,
		ShowNotes: true,
	}
	for i := range report.Results {
		res := &report.Results[i]
		if opts.Quiet && res.Status != driver.FileFailed {
			continue
		}
		if res.Status == driver.FileUnchanged && !opts.ShowUnchanged && res.Diagnostics.Len() == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, resultLine(res, opts)); err != nil {
			return err
		}
		if res.Diff != "" {
			if err := Diff(w, res.Diff, opts.Color); err != nil {
				return err
			}
		}
		if res.Diagnostics.Len() > 0 {
			res.Diagnostics.Sort()
			Pretty(w, res.Diagnostics, report.Files, pretty)
		}
	}

	if opts.Quiet {
		return nil
	}
	fixed, unchanged, failed := report.Counts()
	verb := "fixed"
	if report.DryRun {
		verb = "would fix"
	}
	_, err := fmt.Fprintf(w, "%d files: %d %s, %d unchanged, %d failed\n",
		len(report.Results), fixed, verb, unchanged, failed)
	return err
}

func resultLine(res *driver.FileResult, opts ReportOpts) string {
	var c *color.Color
	switch res.Status {
	case driver.FileFixed:
		c = fixedColor
	case driver.FileFailed:
		c = failedColor
	default:
		c = plainColor
	}
	line := fmt.Sprintf("%s %s", paint(c, opts.Color, fmt.Sprintf("%-9s", res.Status)), displayPath(res.Path, opts))
	if len(res.Applied) > 0 {
		line += " (" + strings.Join(res.Applied, ", ") + ")"
	}
	if res.Diff != "" {
		added, removed := textdiff.Stat(res.Diff)
		line += fmt.Sprintf(" +%d -%d", added, removed)
	}
	if res.Cached {
		line += " [cached]"
	}
	if res.Err != nil {
		line += ": " + res.Err.Error()
	}
	return line
}

func displayPath(path string, opts ReportOpts) string {
	if path == "" {
		return "<walk>"
	}
	return formatPath(path, opts.PathMode, opts.BaseDir)
}

// FileJSON is one file of a JSON report.
type FileJSON struct {
	Path        string           `json:"path"`
	Status      string           `json:"status"`
	Applied     []string         `json:"applied,omitempty"`
	Passes      int              `json:"passes,omitempty"`
	Stable      bool             `json:"stable"`
	Cached      bool             `json:"cached,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Error       string           `json:"error,omitempty"`
	ElapsedMS   float64          `json:"elapsed_ms"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

// SummaryJSON counts files per status.
type SummaryJSON struct {
	Fixed     int `json:"fixed"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// ReportJSONOutput is the root of a JSON report.
type ReportJSONOutput struct {
	DryRun  bool        `json:"dry_run"`
	Files   []FileJSON  `json:"files"`
	Summary SummaryJSON `json:"summary"`
}

// BuildReport converts a driver report for JSON output.
func BuildReport(report *driver.Report, opts JSONOpts) ReportJSONOutput {
	out := ReportJSONOutput{
		DryRun: report.DryRun,
		Files:  make([]FileJSON, 0, len(report.Results)),
	}
	for i := range report.Results {
		res := &report.Results[i]
		fj := FileJSON{
			Path:        res.Path,
			Status:      string(res.Status),
			Applied:     res.Applied,
			Passes:      res.Passes,
			Stable:      res.Stable,
			Cached:      res.Cached,
			Diff:        res.Diff,
			ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
			Diagnostics: BuildDiagnostics(res.Diagnostics, report.Files, opts),
		}
		if res.Err != nil {
			fj.Error = res.Err.Error()
		}
		out.Files = append(out.Files, fj)
	}
	out.Summary.Fixed, out.Summary.Unchanged, out.Summary.Failed = report.Counts()
	return out
}

// ReportJSON writes the report as indented JSON.
func ReportJSON(w io.Writer, report *driver.Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReport(report, opts))
}
