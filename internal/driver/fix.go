package driver

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"csfix/internal/cache"
	"csfix/internal/diag"
	"csfix/internal/lexer"
	"csfix/internal/observ"
	"csfix/internal/rule"
	"csfix/internal/runner"
	"csfix/internal/source"
	"csfix/internal/textdiff"
)

// Options configures FixPaths.
type Options struct {
	// Rules are the selected rules; the runner orders them by priority.
	Rules     []rule.Rule
	MaxPasses int
	// DryRun computes results without writing files.
	DryRun bool
	// Diff fills FileResult.Diff for changed files.
	Diff bool
	// Jobs bounds the number of workers; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache may be nil.
	Cache          *cache.Cache
	Progress       ProgressSink
	Logger         *slog.Logger
	Timer          *observ.Timer
	MaxDiagnostics int
}

// FixPaths fixes every path produced by files. Per-file failures are
// recorded in the report and never stop the batch; the returned error is
// only the context's. Cancelling ctx stops scheduling new files.
func FixPaths(ctx context.Context, files iter.Seq2[string, error], opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	discover := opts.Timer.Begin("discover")
	type entry struct {
		path string
		err  error
	}
	var entries []entry
	for path, err := range files {
		entries = append(entries, entry{path: path, err: err})
		if err == nil {
			emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
		}
	}
	opts.Timer.End(discover, fmt.Sprintf("%d files", len(entries)))

	report := &Report{
		Files:   source.NewFileSet(),
		Results: make([]FileResult, len(entries)),
		DryRun:  opts.DryRun,
	}
	if len(entries) == 0 {
		return report, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	w := &worker{opts: opts, files: report.Files, log: log}
	fixing := opts.Timer.Begin("fix")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(entries)))
	for i, e := range entries {
		if gctx.Err() != nil {
			break
		}
		if e.err != nil {
			report.Results[i] = walkFailure(report.Files, e.path, e.err, opts.MaxDiagnostics)
			log.Warn("walk failed", "path", e.path, "err", e.err)
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			report.Results[i] = w.fixFile(e.path)
			return nil
		})
	}
	err := g.Wait()
	opts.Timer.End(fixing, "")

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		// незапущенные файлы отмечаем как отменённые
		for i := range report.Results {
			if report.Results[i].Status == "" {
				report.Results[i] = FileResult{Path: entries[i].path, Status: FileFailed, Err: err}
			}
		}
		return report, err
	}
	return report, nil
}

func walkFailure(files *source.FileSet, path string, err error, maxDiagnostics int) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadError, placeholder(files, path), err.Error()).Emit()
	return FileResult{Path: path, Status: FileFailed, Err: err, Diagnostics: bag}
}

// placeholder registers an empty virtual file so that diagnostics about an
// unreadable path still resolve to that path.
func placeholder(files *source.FileSet, path string) source.Span {
	if path == "" {
		path = "<walk>"
	}
	return source.Span{File: files.AddVirtual(path, nil)}
}

type worker struct {
	opts  Options
	files *source.FileSet
	log   *slog.Logger
}

func (w *worker) fixFile(path string) (res FileResult) {
	start := time.Now()
	res = FileResult{Path: path, Diagnostics: diag.NewBag(w.opts.MaxDiagnostics)}
	rep := diag.BagReporter{Bag: res.Diagnostics}
	stage := StageRead
	defer func() {
		res.Elapsed = time.Since(start)
		if res.Status == FileFailed {
			w.opts.Cache.Forget(path)
			emit(w.opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: res.Err, Elapsed: res.Elapsed})
			w.log.Warn("file failed", "path", path, "err", res.Err)
			return
		}
		emit(w.opts.Progress, Event{File: path, Stage: stage, Status: StatusDone, Elapsed: res.Elapsed})
		w.log.Info("file done", "path", path, "status", res.Status, "applied", res.Applied)
	}()

	emit(w.opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	readStart := time.Now()
	id, err := w.files.Load(path)
	w.opts.Timer.Add("read", time.Since(readStart))
	if err != nil {
		res.Status = FileFailed
		res.Err = fmt.Errorf("read %s: %w", path, err)
		diag.ReportError(rep, diag.IOLoadError, placeholder(w.files, path), res.Err.Error()).Emit()
		return res
	}
	file := w.files.Get(id)

	if w.opts.Cache.Fresh(path, file.Content) {
		res.Status = FileUnchanged
		res.Stable = true
		res.Cached = true
		return res
	}

	stage = StageFix
	emit(w.opts.Progress, Event{File: path, Stage: StageFix, Status: StatusWorking})
	fixStart := time.Now()
	if lexer.HasOpenTag(file.Content) {
		// только ради диагностик лексера
		lexer.Tokenize(file, lexer.Options{Reporter: rep})
	}
	text := file.Text()
	run, err := runner.New(w.opts.Rules,
		runner.WithMaxPasses(w.opts.MaxPasses),
		runner.WithReporter(rep),
		runner.WithLogger(w.log),
	).Run(file, text)
	w.opts.Timer.Add("rules", time.Since(fixStart))

	res.Applied = run.Applied
	res.Passes = run.Passes
	res.Stable = run.Stable()
	if w.opts.Diff && run.Changed {
		res.Diff = textdiff.Unified(path, text, run.Text)
	}
	if err != nil {
		res.Status = FileFailed
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	if !run.Changed {
		res.Status = FileUnchanged
		w.opts.Cache.Store(path, file.Content)
		return res
	}

	res.Status = FileFixed
	if w.opts.DryRun {
		w.opts.Cache.Forget(path)
		return res
	}

	stage = StageWrite
	emit(w.opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	writeStart := time.Now()
	err = writeFile(path, []byte(run.Text))
	w.opts.Timer.Add("write", time.Since(writeStart))
	if err != nil {
		res.Status = FileFailed
		res.Err = fmt.Errorf("write %s: %w", path, err)
		diag.ReportError(rep, diag.IOWriteError, source.Span{File: id}, res.Err.Error()).Emit()
		return res
	}
	w.files.Add(path, []byte(run.Text), 0)
	w.opts.Cache.Store(path, []byte(run.Text))
	return res
}

// writeFile replaces the content of path keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return errors.New("not a regular file")
	}
	// #nosec G306 -- permissions are the file's own
	return os.WriteFile(path, data, info.Mode().Perm())
}
