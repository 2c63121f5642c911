package cursor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"moveide/internal/ide"
	"moveide/internal/source"
	"moveide/internal/symbols"
)

const fieldSrc = "module 0x1::m {\n    struct S { f: u64 }\n}\n"

func setup(t *testing.T) (*source.FileSet, source.FileID, *ide.IDEInfo, uint32) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.move", []byte(fieldSrc))
	start := uint32(strings.Index(fieldSrc, "u64"))
	require.NotZero(t, start)

	info := ide.NewIDEInfo()
	dot := &ide.DotAutocompleteInfo{
		Fields: []ide.FieldCandidate{{Name: symbols.New("f")}},
	}
	info.Record(source.Span{File: id, Start: start, End: start + 3}, dot)
	info.Freeze()
	return fs, id, info, start
}

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func TestLookupAtFieldType(t *testing.T) {
	fs, id, info, _ := setup(t)

	// "    struct S { f: u64 }": u64 starts at character 18
	ctx := Lookup(fs, info, id, pos(1, 18))
	require.NotNil(t, ctx)
	assert.Equal(t, []ide.AnnotationKind{ide.KindDotAutocomplete}, ctx.Kinds())
	assert.Equal(t, "Possible dot names: 'f'", ctx.Rendered[0].Message)
	assert.Equal(t, pos(1, 18), ctx.Ranges[0].Start)
	assert.Equal(t, pos(1, 21), ctx.Ranges[0].End)

	ctx = Lookup(fs, info, id, pos(1, 20))
	require.NotNil(t, ctx, "last character of the span is inside")
}

func TestLookupIsHalfOpen(t *testing.T) {
	fs, id, info, _ := setup(t)

	assert.Nil(t, Lookup(fs, info, id, pos(1, 21)), "one past the end is outside")
	assert.Nil(t, Lookup(fs, info, id, pos(1, 17)), "one before the start is outside")
	assert.Nil(t, Lookup(fs, info, id, pos(0, 0)))
}

func TestLookupOtherFile(t *testing.T) {
	fs, _, info, _ := setup(t)
	other := fs.AddVirtual("n.move", []byte(fieldSrc))
	assert.Nil(t, Lookup(fs, info, other, pos(1, 18)))
}

func TestContextString(t *testing.T) {
	fs, id, info, _ := setup(t)
	ctx := Query{ContextLines: 1}.Lookup(fs, info, id, pos(1, 19))
	require.NotNil(t, ctx)

	want := "m.move 1:19 (offset 35)\n" +
		"[1:18-1:21] dot_autocomplete IDE1003 Possible dot names: 'f'\n" +
		"     0 | module 0x1::m {\n" +
		">    1 |     struct S { f: u64 }\n" +
		"     2 | }\n"
	assert.Equal(t, want, ctx.String())

	var none *Context
	assert.Equal(t, "no annotations at cursor\n", none.String())
}

func TestUTF16Mapping(t *testing.T) {
	src := "let s = \"e\u0301🙂\"; x\nnext"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("u.move", []byte(src)))

	x := uint32(strings.Index(src, "x"))
	// "let s = \"" is 9 units, e + combining accent 2, emoji 2, then "\"; " 3
	p := PositionForOffset(f, x)
	assert.Equal(t, pos(0, 16), p)
	assert.Equal(t, x, OffsetForPosition(f, p))

	// inside the surrogate pair resolves to the emoji start
	emoji := uint32(strings.Index(src, "🙂"))
	assert.Equal(t, emoji, OffsetForPosition(f, pos(0, 12)))

	next := uint32(strings.Index(src, "next"))
	assert.Equal(t, next, OffsetForPosition(f, pos(1, 0)))
	assert.Equal(t, uint32(len(src)), OffsetForPosition(f, pos(1, 99)))
	assert.Equal(t, uint32(len(src)), OffsetForPosition(f, pos(7, 0)))
	assert.Equal(t, pos(1, 4), PositionForOffset(f, 1000))
}
