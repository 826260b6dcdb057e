package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"csfix/internal/cache"
	"csfix/internal/diag"
	"csfix/internal/diagfmt"
	"csfix/internal/driver"
	"csfix/internal/finder"
	"csfix/internal/observ"
	"csfix/internal/runner"
	"csfix/internal/textdiff"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Fix coding standards in files and directories",
	Long: `Fix walks the given paths (or the configured ones) and rewrites every
matching file until the selected rules stop changing it. Use "-" to fix
standard input and print the result.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("config", "", "path to a .csfix.toml or .csfix.yaml file")
	fixCmd.Flags().String("profile", "", "built-in profile (default|psr2|contrib)")
	fixCmd.Flags().String("level", "", "override the profile level (psr0|psr1|psr2|symfony|all|contrib)")
	fixCmd.Flags().StringSlice("rules", nil, "rules to enable, prefix with - to disable")
	fixCmd.Flags().Bool("dry-run", false, "report changes without writing files")
	fixCmd.Flags().Bool("diff", false, "show a unified diff of every change")
	fixCmd.Flags().String("format", "text", "report format (text|json)")
	fixCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	fixCmd.Flags().Bool("no-cache", false, "ignore and do not update the cache")
	fixCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	fixCmd.Flags().Bool("verbose", false, "list unchanged files too")
}

type fixOptions struct {
	profile        profileFlags
	dryRun         bool
	diff           bool
	format         string
	jobs           int
	noCache        bool
	ui             switchMode
	verbose        bool
	quiet          bool
	color          bool
	timings        bool
	maxDiagnostics int
}

func readFixOptions(cmd *cobra.Command, args []string) (fixOptions, error) {
	var opts fixOptions
	var err error
	flags := cmd.Flags()
	if opts.profile.configPath, err = flags.GetString("config"); err != nil {
		return opts, err
	}
	if opts.profile.profile, err = flags.GetString("profile"); err != nil {
		return opts, err
	}
	if opts.profile.level, err = flags.GetString("level"); err != nil {
		return opts, err
	}
	if opts.profile.rules, err = flags.GetStringSlice("rules"); err != nil {
		return opts, err
	}
	opts.profile.paths = args
	if opts.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return opts, err
	}
	if opts.diff, err = flags.GetBool("diff"); err != nil {
		return opts, err
	}
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, err
	}
	opts.format = strings.ToLower(opts.format)
	if opts.format != "text" && opts.format != "json" {
		return opts, fmt.Errorf("unknown format %q (expected text|json)", opts.format)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.noCache, err = flags.GetBool("no-cache"); err != nil {
		return opts, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, err
	}
	if opts.ui, err = parseSwitchMode("ui", uiValue); err != nil {
		return opts, err
	}
	if opts.verbose, err = flags.GetBool("verbose"); err != nil {
		return opts, err
	}

	root := cmd.Root().PersistentFlags()
	if opts.quiet, err = root.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = root.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	opts.color = useColor(cmd, os.Stdout)
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readFixOptions(cmd, args)
	if err != nil {
		return err
	}
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "-" {
		opts.profile.paths = nil
		return fixStdin(os.Stdin, cmd.OutOrStdout(), os.Stderr, opts, workDir)
	}

	code, err := fixFiles(cmd.Context(), cmd.OutOrStdout(), os.Stderr, opts, workDir)
	if err != nil {
		return err
	}
	if code != 0 {
		return exitError{code: code}
	}
	return nil
}

// fixFiles runs the driver over the profile's paths and prints the report.
// It returns the exit status derived from the report.
func fixFiles(ctx context.Context, stdout, stderr io.Writer, opts fixOptions, workDir string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timer := observ.NewTimer()
	if !opts.timings {
		timer = nil
	}

	setup := timer.Begin("setup")
	prof, err := resolveProfile(opts.profile, workDir)
	if err != nil {
		return 0, err
	}
	logger.Info("profile", "profile", prof.String())

	fnd := &finder.Finder{
		Roots:    prof.profile.Finder.Paths,
		Include:  prof.profile.Finder.Include,
		Exclude:  prof.profile.Finder.Exclude,
		SkipDirs: prof.profile.Finder.SkipDirs,
	}
	if err := fnd.Check(); err != nil {
		return 0, err
	}

	var c *cache.Cache
	if !opts.noCache {
		path := prof.cachePath(workDir)
		c, err = cache.Open(path, prof.signature())
		if err != nil {
			// испорченный кэш просто пересоздаём
			logger.Warn("cache reset", "path", path, "err", err)
			if rmErr := os.Remove(path); rmErr != nil {
				return 0, fmt.Errorf("reset cache: %w", rmErr)
			}
			if c, err = cache.Open(path, prof.signature()); err != nil {
				return 0, err
			}
		}
	}
	timer.End(setup, prof.String())

	dopts := driver.Options{
		Rules:          prof.rules,
		MaxPasses:      prof.maxPasses(),
		DryRun:         opts.dryRun,
		Diff:           opts.diff || (opts.format == "json" && opts.dryRun),
		Jobs:           opts.jobs,
		Cache:          c,
		Logger:         logger,
		Timer:          timer,
		MaxDiagnostics: opts.maxDiagnostics,
	}

	var report *driver.Report
	if opts.format == "text" && !opts.quiet && liveProgress(opts.ui, os.Getenv) {
		report, err = runFixWithUI(ctx, "fixing", fnd, dopts)
	} else {
		report, err = driver.FixPaths(ctx, fnd.Files(), dopts)
	}
	if err != nil {
		return 0, err
	}

	if !opts.noCache && !opts.dryRun {
		if err := c.Save(); err != nil {
			logger.Warn("cache not saved", "err", err)
		}
	}

	switch opts.format {
	case "json":
		err = diagfmt.ReportJSON(stdout, report, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			BaseDir:          workDir,
			IncludeNotes:     true,
		})
	default:
		err = diagfmt.ReportText(stdout, report, diagfmt.ReportOpts{
			Color:         opts.color,
			PathMode:      diagfmt.PathModeRelative,
			BaseDir:       workDir,
			ShowUnchanged: opts.verbose,
			Quiet:         opts.quiet,
			Context:       1,
		})
	}
	if err != nil {
		return 0, err
	}
	if opts.timings {
		fmt.Fprint(stderr, timer.Summary())
	}
	return report.ExitCode(), nil
}

// fixStdin fixes standard input and writes the result (or its diff) to out.
func fixStdin(in io.Reader, out, stderr io.Writer, opts fixOptions, workDir string) error {
	prof, err := resolveProfile(opts.profile, workDir)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	text := string(data)

	bag := diag.NewBag(opts.maxDiagnostics)
	res, runErr := runner.FixString(prof.rules, text,
		runner.WithMaxPasses(prof.maxPasses()),
		runner.WithReporter(diag.BagReporter{Bag: bag}),
		runner.WithLogger(logger),
	)
	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(stderr, bag, nil, diagfmt.PrettyOpts{})
	}
	if runErr != nil {
		return runErr
	}

	if opts.diff || opts.dryRun {
		if err := diagfmt.Diff(out, textdiff.Unified("-", text, res.Text), opts.color); err != nil {
			return err
		}
	} else if _, err := io.WriteString(out, res.Text); err != nil {
		return err
	}
	if opts.dryRun && res.Changed {
		return exitError{code: 1}
	}
	return nil
}
