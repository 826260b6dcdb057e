package config

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"csfix/internal/diag"
	"csfix/internal/rule"
	"csfix/internal/source"
)

// scriptSteps bounds one call into a script so a looping rule cannot hang
// the pipeline.
const scriptSteps = 50_000_000

// scriptRule runs a starlark fix(path, text) function. Globals are frozen
// after loading, so one rule may be called from several goroutines, each
// call on its own thread.
type scriptRule struct {
	cfg      CustomRule
	fix      starlark.Callable
	supports starlark.Callable
}

// LoadScriptRule compiles cr.Script and checks that it defines fix.
func LoadScriptRule(cr CustomRule) (rule.Rule, error) {
	src, err := os.ReadFile(cr.Script)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBadCustomRule, cr.Name, err)
	}
	return compileScriptRule(cr, src)
}

func compileScriptRule(cr CustomRule, src []byte) (*scriptRule, error) {
	thread := &starlark.Thread{Name: "load " + cr.Name}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, cr.Script, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBadCustomRule, cr.Name, err)
	}
	globals.Freeze()

	r := &scriptRule{cfg: cr}
	fix, ok := globals["fix"].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%w %q: script does not define fix(path, text)", ErrBadCustomRule, cr.Name)
	}
	r.fix = fix
	if fn, ok := globals["supports"].(starlark.Callable); ok {
		r.supports = fn
	}
	return r, nil
}

func (r *scriptRule) Name() string { return r.cfg.Name }

func (r *scriptRule) Description() string {
	if r.cfg.Description != "" {
		return r.cfg.Description
	}
	return "custom rule " + r.cfg.Script
}

func (r *scriptRule) Level() rule.Level { return r.cfg.Level }
func (r *scriptRule) Priority() int     { return r.cfg.Priority }

func (r *scriptRule) Supports(file *source.File) bool {
	if r.supports == nil {
		return true
	}
	v, err := r.call(r.supports, starlark.String(filePath(file)))
	if err != nil {
		return false
	}
	return bool(v.Truth())
}

// Fix returns text unchanged when the script fails or returns a non-string,
// reporting the failure as a skipped region.
func (r *scriptRule) Fix(file *source.File, text string, rep diag.Reporter) string {
	v, err := r.call(r.fix, starlark.String(filePath(file)), starlark.String(text))
	if err != nil {
		r.skip(file, rep, err.Error())
		return text
	}
	out, ok := starlark.AsString(v)
	if !ok {
		r.skip(file, rep, fmt.Sprintf("fix returned %s, want string", v.Type()))
		return text
	}
	return out
}

func (r *scriptRule) call(fn starlark.Callable, args ...starlark.Value) (starlark.Value, error) {
	thread := &starlark.Thread{Name: r.cfg.Name}
	thread.SetMaxExecutionSteps(scriptSteps)
	return starlark.Call(thread, fn, starlark.Tuple(args), nil)
}

func (r *scriptRule) skip(file *source.File, rep diag.Reporter, msg string) {
	var sp source.Span
	if file != nil {
		sp.File = file.ID
	}
	diag.ReportWarning(rep, diag.FixRegionSkipped, sp, r.cfg.Name+": "+msg).Emit()
}

func filePath(file *source.File) string {
	if file == nil {
		return ""
	}
	return file.Path
}
