package driver

import (
	"time"

	"csfix/internal/diag"
	"csfix/internal/source"
)

// FileStatus is the outcome of fixing one file.
type FileStatus string

const (
	FileFixed     FileStatus = "fixed"
	FileUnchanged FileStatus = "unchanged"
	FileFailed    FileStatus = "failed"
)

// FileResult describes one file. Fixed means the text changed; with
// dry-run the file on disk is left as it was.
type FileResult struct {
	Path   string
	Status FileStatus
	// Applied lists rules that changed the text.
	Applied []string
	Passes  int
	// Diff is a unified diff, filled when Options.Diff is set.
	Diff string
	Err  error
	// Stable is false when the rules did not converge; the diff then shows
	// the last pass and must not be trusted.
	Stable      bool
	Cached      bool
	Diagnostics *diag.Bag
	Elapsed     time.Duration
}

// Report aggregates a run. Results keep the order the paths were found in.
type Report struct {
	Files   *source.FileSet
	Results []FileResult
	DryRun  bool
}

// Counts returns the number of results per status.
func (r *Report) Counts() (fixed, unchanged, failed int) {
	for i := range r.Results {
		switch r.Results[i].Status {
		case FileFixed:
			fixed++
		case FileUnchanged:
			unchanged++
		case FileFailed:
			failed++
		}
	}
	return fixed, unchanged, failed
}

// Failed reports whether any file failed.
func (r *Report) Failed() bool {
	_, _, failed := r.Counts()
	return failed > 0
}

// Changed reports whether any file was (or, with dry-run, would be) fixed.
func (r *Report) Changed() bool {
	fixed, _, _ := r.Counts()
	return fixed > 0
}

// ExitCode maps the report to the process status: 1 on failures, and in
// dry-run mode also when something would change.
func (r *Report) ExitCode() int {
	if r.Failed() || r.DryRun && r.Changed() {
		return 1
	}
	return 0
}
