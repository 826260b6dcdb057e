package driver

import (
	"fmt"

	"csfix/internal/diag"
	"csfix/internal/lexer"
	"csfix/internal/source"
	"csfix/internal/token"
)

// TokenizeOptions controls Tokenize.
type TokenizeOptions struct {
	MaxDiagnostics int
	// Code lexes the file as PHP code even without an open tag.
	Code bool
}

// TokenizeResult keeps the file set alive so token spans can be resolved.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file the way the rules see it and collects lexer
// diagnostics.
func Tokenize(path string, opts TokenizeOptions) (*TokenizeResult, error) {
	files := source.NewFileSet()
	id, err := files.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res := &TokenizeResult{FileSet: files, File: files.Get(id), Bag: diag.NewBag(opts.MaxDiagnostics)}
	res.Tokens = lexer.Tokenize(res.File, lexer.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		CodeMode: opts.Code,
	})
	return res, nil
}
