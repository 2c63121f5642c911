package diagfmt

import (
	"encoding/json"
	"io"

	"moveide/internal/diag"
	"moveide/internal/source"
)

// Position locates a span: byte offsets always, line/col on request.
type Position struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// Label is a secondary message of an entry.
type Label struct {
	Message  string   `json:"message"`
	Position Position `json:"location"`
}

// Entry is one rendered annotation or load error.
type Entry struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Position Position `json:"location"`
	Labels   []Label  `json:"notes,omitempty"`
}

// Report is the document written by JSON.
// Total counts everything in the bag, Count only what was emitted.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
	Total       int     `json:"total"`
}

type positioner struct {
	fs    *source.FileSet
	mode  PathMode
	lines bool
}

func (p positioner) at(span source.Span) Position {
	pos := Position{StartByte: span.Start, EndByte: span.End}
	if int(span.File) >= p.fs.Len() {
		return pos // span из чужого FileSet: только байты
	}
	pos.File = formatPath(p.fs, span.File, p.mode)
	if p.lines {
		from, to := p.fs.Resolve(span)
		pos.StartLine, pos.StartCol = from.Line, from.Col
		pos.EndLine, pos.EndCol = to.Line, to.Col
	}
	return pos
}

// BuildReport converts bag to its JSON shape without encoding it.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	all := bag.Items()
	shown := all
	if opts.Max > 0 && opts.Max < len(shown) {
		shown = shown[:opts.Max]
	}
	p := positioner{fs: fs, mode: opts.PathMode, lines: opts.IncludePositions}
	rep := Report{Diagnostics: make([]Entry, 0, len(shown)), Total: len(all)}
	for _, d := range shown {
		e := Entry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Position: p.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				e.Labels = append(e.Labels, Label{Message: n.Msg, Position: p.at(n.Span)})
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, e)
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON пишет отчёт с отступом в два пробела.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
