package cursor

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"moveide/internal/diag"
	"moveide/internal/ide"
	"moveide/internal/source"
)

// Context is what lies under a cursor: every recorded fact whose span
// contains the cursor offset, in recording order.
type Context struct {
	Path     string
	Position protocol.Position
	Offset   uint32
	Entries  []ide.Entry
	// Ranges and Rendered are parallel to Entries.
	Ranges   []protocol.Range
	Rendered []diag.Diagnostic
	// Source holds the lines around the cursor, see Query.ContextLines.
	Source []string
	first  int // 0-based line of Source[0]
}

// Query configures Lookup.
type Query struct {
	// ContextLines is how many source lines around the cursor line are
	// kept in Context.Source. Zero keeps none.
	ContextLines int
}

// Lookup finds the facts under pos. It returns nil when nothing covers the
// cursor. info should be frozen; Lookup only reads it.
func Lookup(fs *source.FileSet, info *ide.IDEInfo, file source.FileID, pos protocol.Position) *Context {
	return Query{}.Lookup(fs, info, file, pos)
}

func (q Query) Lookup(fs *source.FileSet, info *ide.IDEInfo, file source.FileID, pos protocol.Position) *Context {
	f := fs.Get(file)
	offset := OffsetForPosition(f, pos)
	entries := info.At(file, offset)
	if len(entries) == 0 {
		return nil
	}
	ctx := &Context{
		Path:     fs.RelPath(file),
		Position: pos,
		Offset:   offset,
		Entries:  entries,
		Ranges:   make([]protocol.Range, len(entries)),
		Rendered: make([]diag.Diagnostic, len(entries)),
	}
	for i, e := range entries {
		ctx.Ranges[i] = RangeForSpan(f, e.Span)
		ctx.Rendered[i] = ide.Render(e.Span, e.Annotation)
	}
	if q.ContextLines > 0 {
		ctx.first, ctx.Source = surroundingLines(f, int(pos.Line), q.ContextLines)
	}
	return ctx
}

// Kinds lists the annotation kinds under the cursor.
func (c *Context) Kinds() []ide.AnnotationKind {
	if c == nil {
		return nil
	}
	out := make([]ide.AnnotationKind, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Annotation.Kind()
	}
	return out
}

// String renders the context deterministically; cursor baselines store it.
// Positions are printed 0-based, as LSP sends them.
func (c *Context) String() string {
	if c == nil {
		return "no annotations at cursor\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d:%d (offset %d)\n", c.Path, c.Position.Line, c.Position.Character, c.Offset)
	for i, d := range c.Rendered {
		r := c.Ranges[i]
		fmt.Fprintf(&b, "[%d:%d-%d:%d] %s %s %s\n",
			r.Start.Line, r.Start.Character, r.End.Line, r.End.Character,
			c.Entries[i].Annotation.Kind(), d.Code.ID(), d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "    note: %s\n", n.Msg)
		}
	}
	for i, line := range c.Source {
		marker := " "
		if c.first+i == int(c.Position.Line) {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %4d | %s\n", marker, c.first+i, line)
	}
	return b.String()
}

func surroundingLines(f *source.File, line, n int) (int, []string) {
	last := len(f.LineIdx) // index of the last line
	line = min(line, last)
	first := max(0, line-n)
	end := min(last, line+n)
	lines := make([]string, 0, end-first+1)
	for l := first; l <= end; l++ {
		start, stop := lineBounds(f, l)
		lines = append(lines, string(f.Content[start:stop]))
	}
	return first, lines
}
