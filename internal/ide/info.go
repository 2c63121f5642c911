package ide

import (
	"fmt"
	"iter"

	"moveide/internal/source"
	"moveide/internal/trace"
)

// Entry is one recorded (location, annotation) pair.
type Entry struct {
	Span       source.Span
	Annotation Annotation
}

// Sink is what a checking pass needs to report annotations.
type Sink interface {
	Record(sp source.Span, ann Annotation)
}

// IDEInfo is the append-only store of annotations produced by one checking
// pass. Entries keep insertion order; nothing is ever removed or reordered.
// The zero value is an empty, writable store.
//
// IDEInfo has no internal locking. It is written by one pass, then frozen
// and read; callers sharing it across goroutines must serialize access to
// the whole store.
type IDEInfo struct {
	entries []Entry
	frozen  bool
	readers int // active All() loops
	tracer  trace.Tracer
}

// NewIDEInfo returns an empty store.
func NewIDEInfo() *IDEInfo {
	return &IDEInfo{}
}

// SetTracer makes Record emit a node-level trace point per annotation.
func (info *IDEInfo) SetTracer(t trace.Tracer) {
	info.tracer = t
}

// Record appends an annotation. Recording into a frozen store, during
// iteration, or recording a nil annotation is a programming error and panics.
func (info *IDEInfo) Record(sp source.Span, ann Annotation) {
	if ann == nil {
		panic("ide: recording nil annotation")
	}
	info.mustBeWritable("Record")
	info.entries = append(info.entries, Entry{Span: sp, Annotation: ann})
	if info.tracer != nil && info.tracer.Enabled() {
		trace.Point(info.tracer, trace.ScopeNode, "ide:"+ann.Kind().String(), sp.String())
	}
}

// Merge appends every entry of other after the receiver's own entries and
// leaves other empty.
func (info *IDEInfo) Merge(other *IDEInfo) {
	if other == nil {
		return
	}
	if other == info {
		panic("ide: merging a store into itself")
	}
	info.mustBeWritable("Merge")
	other.mustBeWritable("Merge (source)")
	info.entries = append(info.entries, other.entries...)
	other.entries = nil
}

// Freeze ends the write phase. It is idempotent.
func (info *IDEInfo) Freeze() {
	info.frozen = true
}

// Frozen reports whether Freeze was called.
func (info *IDEInfo) Frozen() bool {
	return info.frozen
}

func (info *IDEInfo) IsEmpty() bool {
	return len(info.entries) == 0
}

func (info *IDEInfo) Len() int {
	return len(info.entries)
}

// All yields entries in insertion order. The sequence can be ranged over
// any number of times; the store must not be modified while a loop over
// it is running.
func (info *IDEInfo) All() iter.Seq2[source.Span, Annotation] {
	return func(yield func(source.Span, Annotation) bool) {
		info.readers++
		defer func() { info.readers-- }()
		for _, e := range info.entries {
			if !yield(e.Span, e.Annotation) {
				return
			}
		}
	}
}

// Entries returns a copy of the recorded entries.
func (info *IDEInfo) Entries() []Entry {
	out := make([]Entry, len(info.entries))
	copy(out, info.entries)
	return out
}

// Filter returns, in insertion order, the entries whose span satisfies pred.
func (info *IDEInfo) Filter(pred func(source.Span) bool) []Entry {
	var out []Entry
	for sp, ann := range info.All() {
		if pred(sp) {
			out = append(out, Entry{Span: sp, Annotation: ann})
		}
	}
	return out
}

// At is Filter with the cursor containment predicate.
func (info *IDEInfo) At(file source.FileID, offset uint32) []Entry {
	return info.Filter(func(sp source.Span) bool { return sp.Contains(file, offset) })
}

func (info *IDEInfo) mustBeWritable(op string) {
	switch {
	case info.frozen:
		panic(fmt.Sprintf("ide: %s on a frozen store", op))
	case info.readers > 0:
		panic(fmt.Sprintf("ide: %s while the store is being iterated", op))
	}
}
