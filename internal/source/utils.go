package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize срезает BOM и сворачивает \r\n в \n; одиночный \r остаётся.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func newlineOffsets(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol: номер строки равен числу '\n' строго левее off.
func toLineCol(newlines []uint32, off uint32) LineCol {
	n, _ := slices.BinarySearch(newlines, off)
	lineStart := uint32(0)
	if n > 0 {
		lineStart = newlines[n-1] + 1
	}
	return LineCol{Line: uint32(n + 1), Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath expresses path against baseDir with forward slashes.
// A path outside baseDir comes back absolute.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if escapes := rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)); escapes {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}
