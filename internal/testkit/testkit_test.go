package testkit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moveide/internal/diag"
	"moveide/internal/driver"
	"moveide/internal/ide"
	"moveide/internal/source"
	"moveide/internal/symbols"
)

func testdata(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func TestIDEBaselines(t *testing.T) {
	fixtures, err := filepath.Glob(testdata("ide", "*.toml"))
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	for _, fx := range fixtures {
		name := strings.TrimSuffix(filepath.Base(fx), filepath.Ext(fx))
		t.Run(name, func(t *testing.T) {
			res, err := driver.Analyze(context.Background(), fx, driver.Options{Jobs: 1})
			require.NoError(t, err)
			require.NoError(t, CheckStoreInvariants(res.Info, res.FileSet))

			got := diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, true) + "\n"
			exp := strings.TrimSuffix(fx, filepath.Ext(fx)) + ExpExt
			require.NoError(t, CheckExpected(exp, got))
		})
	}
}

func TestCursorBaselines(t *testing.T) {
	tests, err := filepath.Glob(testdata("cursor", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, tests)

	for _, path := range tests {
		t.Run(filepath.Base(path), func(t *testing.T) {
			require.NoError(t, RunCursorTest(context.Background(), path))
		})
	}
}

func TestCheckExpected(t *testing.T) {
	t.Setenv("UPDATE_BASELINE", "")
	t.Setenv("UB", "")
	dir := t.TempDir()
	exp := filepath.Join(dir, "out.exp")

	err := CheckExpected(exp, "a\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No baseline file found.")
	assert.Contains(t, err.Error(), "UPDATE_BASELINE=1")

	require.NoError(t, os.WriteFile(exp, []byte("a\nb\n"), 0o600))
	require.NoError(t, CheckExpected(exp, "a\nb\n"))

	err = CheckExpected(exp, "a\nc\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-b")
	assert.Contains(t, err.Error(), "+c")

	t.Setenv("UB", "1")
	assert.True(t, UpdateBaseline())
	require.NoError(t, CheckExpected(exp, "a\nc\n"))
	data, err := os.ReadFile(exp)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", string(data))
}

func TestGenerateCursorTests(t *testing.T) {
	dir := t.TempDir()
	written, err := GenerateCursorTests(dir, "../ide", "sources/dot_call.move", []CursorPoint{
		{Line: 11, Character: 32, Description: "field name after a dot"},
		{Line: 0, Character: 0, Description: "nothing"},
	})
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dir, "dot_call_11_32.json"), written[0])

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	var ct CursorTest
	require.NoError(t, json.Unmarshal(data, &ct))
	assert.Equal(t, CursorTest{
		Directory:   "../ide",
		File:        "sources/dot_call.move",
		Line:        11,
		Character:   32,
		Description: "field name after a dot",
	}, ct)
}

func TestCursorTestUnknownFile(t *testing.T) {
	ct := CursorTest{Directory: "ide", File: "sources/nope.move"}
	var out strings.Builder
	err := ct.Run(context.Background(), testdata(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fixture")
}

func TestCheckStoreInvariantsRejectsOutOfBounds(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.move", []byte("module 0x1::m {}\n"))

	info := ide.NewIDEInfo()
	info.Record(source.Span{File: id, Start: 0, End: 6}, ide.ExpandedLambda{})
	require.NoError(t, CheckStoreInvariants(info, fs))

	info.Record(source.Span{File: id, Start: 10, End: 99}, ide.PositionalEllipsis(symbols.New("a")))
	err := CheckStoreInvariants(info, fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond content")

	bad := ide.NewIDEInfo()
	bad.Record(source.Span{File: 7}, ide.ExpandedLambda{})
	assert.ErrorContains(t, CheckStoreInvariants(bad, fs), "unknown file id")
}
