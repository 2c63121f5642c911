package fixture

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"moveide/internal/ide"
	"moveide/internal/source"
)

// Ext is the extension of fixture files.
const Ext = ".toml"

// SourceError reports that the Move file a fixture names could not be read.
type SourceError struct {
	Fixture string
	Path    string // as written in the fixture
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: cannot load source %s: %v", e.Fixture, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Decode parses fixture text. name is used in error messages only.
func Decode(name string, data []byte) (*File, error) {
	var f File
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if !meta.IsDefined("source") || strings.TrimSpace(f.Source) == "" {
		return nil, fmt.Errorf("%s: missing source", name)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	for i, a := range f.Annotations {
		if strings.TrimSpace(a.Kind) == "" {
			return nil, fmt.Errorf("%s: annotation #%d: missing kind", name, i+1)
		}
	}
	return &f, nil
}

// Fixture is a decoded fixture whose source has been loaded.
type Fixture struct {
	Path   string
	Doc    *File
	Source source.FileID
	// Digest covers the fixture text and the source content.
	Digest [32]byte
}

// Open reads the fixture at path and loads the source it names (relative
// to the fixture) into fs, unless fs already holds it. It does not record
// anything.
func Open(fs *source.FileSet, path string) (*Fixture, error) {
	// #nosec G304 -- fixture paths come from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	srcPath := filepath.Join(filepath.Dir(path), filepath.FromSlash(f.Source))
	// фикстуры одного каталога делят исходник: один FileID на путь
	id, ok := fs.GetLatest(srcPath)
	if !ok {
		if id, err = fs.Load(srcPath); err != nil {
			return nil, &SourceError{Fixture: path, Path: f.Source, Err: err}
		}
	}
	h := sha256.New()
	_, _ = h.Write(data)
	srcHash := fs.Get(id).Hash
	_, _ = h.Write(srcHash[:])
	fx := &Fixture{Path: path, Doc: f, Source: id}
	copy(fx.Digest[:], h.Sum(nil))
	return fx, nil
}

// Replay records the fixture's annotations into sink.
func (fx *Fixture) Replay(fs *source.FileSet, sink ide.Sink) error {
	if err := Replay(fs, fx.Source, fx.Doc, sink); err != nil {
		return fmt.Errorf("%s: %w", fx.Path, err)
	}
	return nil
}

// Load is Open followed by Replay.
func Load(fs *source.FileSet, path string, sink ide.Sink) (source.FileID, error) {
	fx, err := Open(fs, path)
	if err != nil {
		return 0, err
	}
	return fx.Source, fx.Replay(fs, sink)
}

// IsSourceMissing reports whether err is a SourceError for a file that does
// not exist.
func IsSourceMissing(err error) bool {
	var se *SourceError
	return errors.As(err, &se) && errors.Is(se.Err, os.ErrNotExist)
}
