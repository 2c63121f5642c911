package ide

import (
	"testing"

	"moveide/internal/source"
	"moveide/internal/symbols"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRecordKeepsInsertionOrder(t *testing.T) {
	info := NewIDEInfo()
	if !info.IsEmpty() {
		t.Fatalf("new store must be empty")
	}
	info.Record(sp(10, 12), ExpandedLambda{})
	info.Record(sp(0, 3), PositionalEllipsis(symbols.New("_0")))
	info.Record(sp(10, 12), &MissingMatchArmsInfo{})

	want := []AnnotationKind{KindExpandedLambda, KindEllipsisMatchEntries, KindMissingMatchArms}
	if info.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", info.Len(), len(want))
	}
	i := 0
	for _, ann := range info.All() {
		if ann.Kind() != want[i] {
			t.Fatalf("entry %d kind = %v, want %v", i, ann.Kind(), want[i])
		}
		i++
	}
}

func TestAllIsRestartable(t *testing.T) {
	info := NewIDEInfo()
	info.Record(sp(0, 1), ExpandedLambda{})
	info.Record(sp(1, 2), ExpandedLambda{})
	seq := info.All()
	for range 2 {
		n := 0
		for range seq {
			n++
		}
		if n != 2 {
			t.Fatalf("iteration yielded %d entries, want 2", n)
		}
	}
}

func TestMergeConsumesOther(t *testing.T) {
	a := NewIDEInfo()
	a.Record(sp(0, 1), ExpandedLambda{})
	b := NewIDEInfo()
	b.Record(sp(5, 6), &MissingMatchArmsInfo{})
	b.Record(sp(7, 8), NamedEllipsis(symbols.New("x")))

	a.Merge(b)
	if a.Len() != 3 || !b.IsEmpty() {
		t.Fatalf("after merge: a.Len()=%d b.Len()=%d, want 3 and 0", a.Len(), b.Len())
	}
	entries := a.Entries()
	if entries[1].Span != sp(5, 6) || entries[2].Span != sp(7, 8) {
		t.Fatalf("merged entries out of order: %+v", entries)
	}
	a.Merge(nil)
	if a.Len() != 3 {
		t.Fatalf("merging nil changed the store")
	}
}

func TestStoreMisusePanics(t *testing.T) {
	expectPanic(t, "nil annotation", func() {
		NewIDEInfo().Record(sp(0, 1), nil)
	})
	expectPanic(t, "record after freeze", func() {
		info := NewIDEInfo()
		info.Freeze()
		info.Record(sp(0, 1), ExpandedLambda{})
	})
	expectPanic(t, "merge into frozen", func() {
		info := NewIDEInfo()
		info.Freeze()
		info.Merge(NewIDEInfo())
	})
	expectPanic(t, "merge frozen source", func() {
		other := NewIDEInfo()
		other.Freeze()
		NewIDEInfo().Merge(other)
	})
	expectPanic(t, "self merge", func() {
		info := NewIDEInfo()
		info.Merge(info)
	})
	expectPanic(t, "record during iteration", func() {
		info := NewIDEInfo()
		info.Record(sp(0, 1), ExpandedLambda{})
		for range info.All() {
			info.Record(sp(1, 2), ExpandedLambda{})
		}
	})
}

func TestRecordAfterIterationEnds(t *testing.T) {
	info := NewIDEInfo()
	info.Record(sp(0, 1), ExpandedLambda{})
	for range info.All() {
		break
	}
	info.Record(sp(1, 2), ExpandedLambda{})
	if info.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", info.Len())
	}
}

func TestFreezeIsIdempotent(t *testing.T) {
	info := NewIDEInfo()
	info.Freeze()
	info.Freeze()
	if !info.Frozen() {
		t.Fatalf("store must report frozen")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	info := NewIDEInfo()
	info.Record(sp(0, 1), ExpandedLambda{})
	entries := info.Entries()
	entries[0].Span = sp(9, 9)
	if info.Entries()[0].Span != sp(0, 1) {
		t.Fatalf("Entries must not alias the store")
	}
}

func TestAtUsesHalfOpenContainment(t *testing.T) {
	info := NewIDEInfo()
	info.Record(sp(4, 8), ExpandedLambda{})
	info.Record(sp(6, 6), &DotAutocompleteInfo{})
	info.Record(source.Span{File: 2, Start: 4, End: 8}, ExpandedLambda{})

	tests := []struct {
		off  uint32
		want int
	}{
		{3, 0},
		{4, 1},
		{6, 1},
		{7, 1},
		{8, 0},
	}
	for _, tt := range tests {
		if got := len(info.At(1, tt.off)); got != tt.want {
			t.Fatalf("At(1, %d) matched %d entries, want %d", tt.off, got, tt.want)
		}
	}
}

func TestSinkIsSatisfiedByStore(t *testing.T) {
	var sink Sink = NewIDEInfo()
	sink.Record(sp(0, 1), ExpandedLambda{})
	if sink.(*IDEInfo).Len() != 1 {
		t.Fatalf("record through Sink was lost")
	}
}

func TestAtSkipsEmptySpans(t *testing.T) {
	info := NewIDEInfo()
	info.Record(source.Span{File: 0, Start: 5, End: 5}, ExpandedLambda{})
	for _, off := range []uint32{4, 5, 6} {
		if got := info.At(0, off); len(got) != 0 {
			t.Fatalf("At(0, %d) = %v, want no entries", off, got)
		}
	}
}
