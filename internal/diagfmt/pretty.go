package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"moveide/internal/diag"
	"moveide/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
		code:   color.New(color.Bold),
		path:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.code, p.path, p.gutter, p.caret, p.note, p.sev[diag.SevInfo], p.sev[diag.SevWarning], p.sev[diag.SevError]} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид в порядке bag.Items().
// Для каждой диагностики:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  <n> | <source line>
//	      |   ^^^^
//	  note: <msg>
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeDiagnostic(&b, &d, fs, opts, p)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDiagnostic(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.sev[d.Severity]
	if sevColor == nil {
		sevColor = p.sev[diag.SevError]
	}
	if int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(b, "%s %s: %s\n", sevColor.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), wrap(d.Message, opts.Wrap, 4))
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(b, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
		sevColor.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), wrap(d.Message, opts.Wrap, 4))
	writeSnippet(b, fs, d.Primary, int(opts.Context), p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(b, "  %s %s\n", p.note.Sprint("note:"), wrap(n.Msg, opts.Wrap, 8))
	}
}

// wrap переносит msg по словам; продолжения сдвигаются на pad пробелов.
func wrap(msg string, width int, pad uint) string {
	if width <= 0 {
		return msg
	}
	head, rest, ok := strings.Cut(wordwrap.String(msg, width), "\n")
	if !ok {
		return head
	}
	return head + "\n" + indent.String(rest, pad)
}

// writeSnippet prints the primary line with ctx lines around it and a caret
// line under the span. Caret widths follow terminal cell width.
func writeSnippet(b *strings.Builder, fs *source.FileSet, sp source.Span, ctx int, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	lines := uint32(len(f.LineIdx) + 1)
	first := start.Line - min(start.Line-1, uint32(max(ctx, 0)))
	last := min(start.Line+uint32(max(ctx, 0)), lines)
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(b, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, ln), text)
		if ln != start.Line {
			continue
		}
		startCol := min(int(start.Col-1), len(text))
		endCol := len(text)
		if end.Line == start.Line {
			endCol = min(int(end.Col-1), len(text))
		}
		pad := runewidth.StringWidth(text[:startCol])
		carets := max(runewidth.StringWidth(text[startCol:max(endCol, startCol)]), 1)
		fmt.Fprintf(b, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", width+2, ""),
			strings.Repeat(" ", pad), p.caret.Sprint(strings.Repeat("^", carets)))
	}
}
