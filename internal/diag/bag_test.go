package diag

import (
	"testing"

	"moveide/internal/source"
)

func TestBagLimitAndMerge(t *testing.T) {
	b := NewBag(1)
	if !b.Add(NewInfo(IDEAutocomplete, source.Span{}, "a")) {
		t.Fatal("first Add must succeed")
	}
	if b.Add(NewInfo(IDEAutocomplete, source.Span{}, "b")) {
		t.Fatal("Add past the limit must fail")
	}

	other := NewBag(0)
	other.Add(NewError(IOLoadFileError, source.Span{}, "c"))
	other.Add(NewInfo(IDEExpandedLambda, source.Span{}, "d"))
	b.Merge(other)

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if !b.HasErrors() {
		t.Fatal("merged bag must report errors")
	}
	if got := b.Items()[2].Message; got != "d" {
		t.Fatalf("merge must preserve order, last = %q", got)
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(0)
	b.Add(NewInfo(IDEAutocomplete, source.Span{File: 0, Start: 5, End: 6}, "late"))
	b.Add(NewInfo(IDEAutocomplete, source.Span{File: 0, Start: 1, End: 2}, "early info"))
	b.Add(NewError(IOLoadFileError, source.Span{File: 0, Start: 1, End: 2}, "early error"))
	b.Sort()

	want := []string{"early error", "early info", "late"}
	for i, d := range b.Items() {
		if d.Message != want[i] {
			t.Fatalf("item %d = %q, want %q", i, d.Message, want[i])
		}
	}
}

func TestPendingSendsOnce(t *testing.T) {
	bag := NewBag(0)
	p := StartInfo(BagReporter{Bag: bag}, IDEMacroCallInfo, source.Span{}, "Called M::foo").
		Note(source.Span{}, "as method call foo")
	if p.Built().Severity != SevInfo {
		t.Fatalf("severity = %v", p.Built().Severity)
	}
	p.Send()
	p.Send()

	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bag.Len())
	}
	if got := bag.Items()[0].Notes; len(got) != 1 || got[0].Msg != "as method call foo" {
		t.Fatalf("notes = %+v", got)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewInfo(IDEAutocomplete, source.Span{}, "m").WithNote(source.Span{}, "a")
	x := base.WithNote(source.Span{}, "x")
	y := base.WithNote(source.Span{}, "y")
	if x.Notes[1].Msg != "x" || y.Notes[1].Msg != "y" || len(base.Notes) != 1 {
		t.Fatalf("notes aliased: %+v / %+v / %+v", base.Notes, x.Notes, y.Notes)
	}
}

func TestCodeID(t *testing.T) {
	if IDEMacroCallInfo.ID() != "IDE1001" || IOLoadFileError.ID() != "IO4001" || UnknownCode.ID() != "E0000" {
		t.Fatal("unexpected code ids")
	}
	if IDEEllipsisExpansion.String() != "[IDE1005]: ellipsis expansion" {
		t.Fatalf("String() = %q", IDEEllipsisExpansion.String())
	}
}
