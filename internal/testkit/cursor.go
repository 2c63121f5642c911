package testkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"moveide/internal/cursor"
	"moveide/internal/driver"
)

// CursorTest is one cursor query stored as JSON next to its baseline.
// Directory holds fixtures; File is the Move source inside it.
type CursorTest struct {
	Directory   string `json:"directory"`
	File        string `json:"file"`
	Line        uint32 `json:"line"`
	Character   uint32 `json:"character"`
	Description string `json:"description"`
}

// CursorPoint is an input to GenerateCursorTests.
type CursorPoint struct {
	Line        uint32
	Character   uint32
	Description string
}

// Run analyses the directory (resolved against root) and writes the cursor
// context for the test position to w.
func (ct CursorTest) Run(ctx context.Context, root string, w io.Writer) error {
	dir := filepath.Join(root, filepath.FromSlash(ct.Directory))
	res, err := driver.Analyze(ctx, dir, driver.Options{Jobs: 1})
	if err != nil {
		return err
	}
	id, ok := res.FileSet.GetLatest(filepath.Join(dir, filepath.FromSlash(ct.File)))
	if !ok {
		return fmt.Errorf("%s: no fixture in %s loads this file", ct.File, ct.Directory)
	}
	pos := protocol.Position{Line: protocol.UInteger(ct.Line), Character: protocol.UInteger(ct.Character)}
	cc := cursor.Query{ContextLines: 1}.Lookup(res.FileSet, res.Info, id, pos)

	if _, err := fmt.Fprintf(w, "-- %d:%d ------------\n", ct.Line, ct.Character); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "expected: %s\n", ct.Description); err != nil {
		return err
	}
	_, err = io.WriteString(w, cc.String())
	return err
}

// RunCursorTest runs the CursorTest stored at path and checks the output
// against the baseline with the same name and ExpExt. Relative directories
// are resolved against the JSON file's directory.
func RunCursorTest(ctx context.Context, path string) error {
	// #nosec G304 -- test data path
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var ct CursorTest
	if err := json.Unmarshal(data, &ct); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	var out strings.Builder
	if err := ct.Run(ctx, filepath.Dir(path), &out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	exp := strings.TrimSuffix(path, filepath.Ext(path)) + ExpExt
	return CheckExpected(exp, out.String())
}

// GenerateCursorTests writes one JSON descriptor per point into outDir,
// named <file base>_<line>_<character>.json. Existing files are overwritten.
func GenerateCursorTests(outDir, directory, file string, points []CursorPoint) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	written := make([]string, 0, len(points))
	for _, p := range points {
		ct := CursorTest{
			Directory:   directory,
			File:        file,
			Line:        p.Line,
			Character:   p.Character,
			Description: p.Description,
		}
		data, err := json.MarshalIndent(ct, "", "  ")
		if err != nil {
			return written, err
		}
		name := filepath.Join(outDir, fmt.Sprintf("%s_%d_%d.json", base, p.Line, p.Character))
		if err := os.WriteFile(name, append(data, '\n'), 0o600); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}
