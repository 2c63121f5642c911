package diagfmt

import (
	"path/filepath"

	"moveide/internal/source"
)

// autoPathLimit is the length above which PathModeAuto drops directories.
const autoPathLimit = 40

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 || filepath.IsAbs(f.Path) {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if rel, err := source.RelativePath(f.Path, fs.BaseDir()); err == nil {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if !filepath.IsAbs(f.Path) {
			return f.Path
		}
		if len(f.Path) > autoPathLimit {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}
