package diagfmt

import (
	"path/filepath"
	"strings"

	"csfix/internal/source"
)

const autoPathLimit = 40

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		if baseDir == "" {
			baseDir = "."
		}
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			return rel
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	}
	// auto
	if filepath.IsAbs(path) && len(path) > autoPathLimit {
		return filepath.Base(path)
	}
	return strings.TrimPrefix(path, "./")
}

// filePath returns the display path of the file behind span, or "" when
// the span does not belong to fs.
func filePath(fs *source.FileSet, span source.Span, mode PathMode, baseDir string) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(span.File)
	if f == nil {
		return ""
	}
	return formatPath(f.Path, mode, baseDir)
}
