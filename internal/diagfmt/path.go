package diagfmt

import (
	"path/filepath"

	"rubysnap/internal/source"
)

func formatPath(f *source.File, mode PathMode, base string) string {
	if f == nil {
		return "<unknown>"
	}
	path := f.Path
	if path == "" {
		return "<input>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(path)); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base == "" {
			return path
		}
		if rel, err := source.RelativePath(path, base); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(filepath.FromSlash(path))
	}
	return path
}
