package testkit

import (
	"fmt"

	"moveide/internal/diag"
	"moveide/internal/ide"
	"moveide/internal/source"
)

// CheckStoreInvariants validates a recorded store against the files it points into:
// 1) every span names a loaded file and lies within its content
// 2) every entry renders to an info diagnostic with an IDE code
// 3) notes are attached to the entry's own span
func CheckStoreInvariants(info *ide.IDEInfo, fs *source.FileSet) error {
	if info == nil || fs == nil {
		return fmt.Errorf("nil store or file set")
	}
	i := 0
	for sp, ann := range info.All() {
		if int(sp.File) >= fs.Len() {
			return fmt.Errorf("entry %d: unknown file id %d", i, sp.File)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("entry %d: inverted span %v", i, sp)
		}
		if whole := (source.Span{File: sp.File, End: fs.Get(sp.File).Len()}); !whole.Includes(sp) {
			return fmt.Errorf("entry %d: span %v beyond content (%d bytes)", i, sp, whole.End)
		}

		d := ide.Render(sp, ann)
		if d.Severity != diag.SevInfo {
			return fmt.Errorf("entry %d (%s): severity %s, want INFO", i, ann.Kind(), d.Severity)
		}
		if d.Code < diag.IDEMacroCallInfo || d.Code > diag.IDEEllipsisExpansion {
			return fmt.Errorf("entry %d (%s): non-IDE code %s", i, ann.Kind(), d.Code.ID())
		}
		for _, n := range d.Notes {
			if n.Span != sp {
				return fmt.Errorf("entry %d (%s): note %q on %v, want %v", i, ann.Kind(), n.Msg, n.Span, sp)
			}
		}
		i++
	}
	return nil
}
