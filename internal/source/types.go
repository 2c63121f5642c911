package source

// FileID is the position of a file inside its FileSet, assigned in load order.
type FileID uint32

// FileFlags records how a file's bytes were obtained and normalized.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // добавлен из памяти, а не с диска
	FileHadBOM                               // UTF-8 BOM был срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is a loaded Move source or fixture.
type File struct {
	ID    FileID
	Path  string
	Flags FileFlags
	// Content holds the normalized bytes; every Span offset points into it.
	Content []byte
	// LineIdx lists the offsets of each '\n' in Content, ascending.
	LineIdx []uint32
	// Hash is the sha256 of Content, used as the cache key for sources.
	Hash [32]byte
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
