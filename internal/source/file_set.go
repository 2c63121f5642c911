package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every fixture and Move source loaded during one run.
// Reloading a path appends a new version; lookups by path see the latest.
// Not safe for concurrent mutation.
type FileSet struct {
	files  []File
	latest map[string]FileID
	base   string // относительно неё печатаются пути
}

// NewFileSet returns an empty set rooted at the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase returns an empty set whose RelPath is computed against base.
func NewFileSetWithBase(base string) *FileSet {
	return &FileSet{latest: map[string]FileID{}, base: base}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.base = dir }

// BaseDir is the configured base, or the working directory when unset.
func (fs *FileSet) BaseDir() string {
	if fs.base != "" {
		return fs.base
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Len counts files, old versions included.
func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers already normalized content under path and returns a fresh id.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	next, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source: %s exceeds 4GiB: %w", path, err))
	}
	id, clean := FileID(next), normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    clean,
		Flags:   flags,
		Content: content,
		LineIdx: newlineOffsets(content),
		Hash:    sha256.Sum256(content),
	})
	fs.latest[clean] = id
	return id
}

// Load reads path from disk, strips a BOM, folds CRLF and adds the result.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- fixture and source paths come from the user
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds content that has no file on disk.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get panics on an id this set never issued.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		panic(fmt.Sprintf("source: unknown file id %d (have %d files)", id, len(fs.files)))
	}
	return &fs.files[id]
}

// GetLatest finds the newest version of path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve maps both ends of span to 1-based line/column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// RelPath prints id's path against BaseDir; virtual files keep their name.
func (fs *FileSet) RelPath(id FileID) string {
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		if rel, err := RelativePath(f.Path, fs.BaseDir()); err == nil {
			return rel
		}
	}
	return f.Path
}

// Offset turns a 1-based line and byte column into an offset into Content.
// Line 0 gives 0; columns past the line end clamp to its '\n'; lines past
// the end clamp to Len.
func (f *File) Offset(pos LineCol) uint32 {
	if pos.Line == 0 {
		return 0
	}
	start, end, ok := f.lineBounds(pos.Line)
	if !ok {
		return f.Len()
	}
	if pos.Col == 0 {
		return start
	}
	return min(start+pos.Col-1, end)
}

// GetLine returns line n without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// lineBounds: [start, end) строки n без '\n'.
func (f *File) lineBounds(n uint32) (start, end uint32, ok bool) {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = f.Len()
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// Len is the content length in bytes.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}
	return n
}
