package ide

import (
	"slices"
	"testing"

	"moveide/internal/diag"
	"moveide/internal/symbols"
	"moveide/internal/types"
)

func noteTexts(d diag.Diagnostic) []string {
	out := make([]string, len(d.Notes))
	for i, n := range d.Notes {
		out[i] = n.Msg
	}
	return out
}

func TestRenderMacroCallScenario(t *testing.T) {
	// obj.foo<T>(x) where foo is a macro in M
	ann := &MacroCallInfo{
		Module:        symbols.MustParseModuleIdent("M"),
		Name:          "foo",
		MethodName:    "foo",
		TypeArguments: []types.Type{types.Param("T")},
		ByValueArgs:   []types.Expr{{Text: "x", Type: types.Param("T")}},
	}
	d := Render(sp(3, 20), ann)
	if d.Code != diag.IDEMacroCallInfo || d.Severity != diag.SevInfo {
		t.Fatalf("code/severity = %v/%v", d.Code, d.Severity)
	}
	if d.Message != "Called M::foo" {
		t.Fatalf("message = %q", d.Message)
	}
	want := []string{"as method call foo", "Type arguments: T", "Subject arg: x"}
	if got := noteTexts(d); !slices.Equal(got, want) {
		t.Fatalf("notes = %q, want %q", got, want)
	}
	if d.Primary != sp(3, 20) {
		t.Fatalf("primary = %v", d.Primary)
	}
}

func TestRenderMacroCallNotesAreIndependent(t *testing.T) {
	ann := &MacroCallInfo{
		Module:        symbols.MustParseModuleIdent("0x1::vector"),
		Name:          "for_each",
		TypeArguments: []types.Type{types.Builtin("u64"), types.Param("U")},
	}
	d := Render(sp(0, 1), ann)
	want := []string{"Type arguments: u64, U"}
	if got := noteTexts(d); !slices.Equal(got, want) {
		t.Fatalf("notes = %q, want %q", got, want)
	}
	if d.Message != "Called 0x1::vector::for_each" {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestRenderMissingNoneArm(t *testing.T) {
	arm := SuggestArm(MissingArm{
		Shape:   ShapeEmptyVariant,
		Module:  symbols.MustParseModuleIdent("M"),
		Type:    "Opt",
		Variant: "None",
	})
	d := Render(sp(0, 5), &MissingMatchArmsInfo{Arms: []PatternSuggestion{arm}})
	if d.Message != "Missing arms: 'M::Opt::None'" {
		t.Fatalf("message = %q", d.Message)
	}
	if d.Code != diag.IDEMissingMatchArms {
		t.Fatalf("code = %v", d.Code)
	}
}

func TestRenderMessages(t *testing.T) {
	m := symbols.MustParseModuleIdent("0x1::m")
	aliases := NewAliasAutocompleteInfo()
	aliases.AddTypeParam("T")
	aliases.AddAddress("std", symbols.MustParseAddress("0x1"))
	aliases.AddModule("vec", symbols.MustParseModuleIdent("std::vector"))
	aliases.AddMember("Opt", symbols.MustParseModuleIdent("std::option"), "Option")

	tests := []struct {
		name string
		ann  Annotation
		code diag.Code
		want string
	}{
		{"lambda", ExpandedLambda{}, diag.IDEExpandedLambda, "expanded lambda"},
		{
			"path", aliases, diag.IDEAutocomplete,
			"Possible in-scope names: 'Opt -> std::option::Option', 'vec -> std::vector', 'std -> 0x1', or 'T'",
		},
		{
			"dot", &DotAutocompleteInfo{
				Methods: []AutocompleteMethod{NewAutocompleteMethod("len", m, "length")},
				Fields:  []FieldCandidate{{Name: "size", Type: types.Builtin("u64")}},
			},
			diag.IDEAutocomplete, "Possible dot names: '0x1::m::len' or 'size'",
		},
		{"dot empty", &DotAutocompleteInfo{}, diag.IDEAutocomplete, "Possible dot names: "},
		{
			"arms", &MissingMatchArmsInfo{Arms: []PatternSuggestion{
				Binder{Name: "a"}, Wildcard{}, UnpackPositionalStruct{Module: m, Name: "P", FieldCount: 1},
			}},
			diag.IDEMissingMatchArms, "Missing arms: 'a', '_', and '0x1::m::P(_)'",
		},
		{"positional ellipsis", PositionalEllipsis("_0", "_1"), diag.IDEEllipsisExpansion, "Ellipsis expansion: _0, _1"},
		{"named ellipsis", NamedEllipsis("x", "y"), diag.IDEEllipsisExpansion, "Ellipsis expansion: x: _, y: _"},
	}
	for _, tt := range tests {
		d := Render(sp(0, 1), tt.ann)
		if d.Message != tt.want {
			t.Fatalf("%s: message = %q, want %q", tt.name, d.Message, tt.want)
		}
		if d.Code != tt.code {
			t.Fatalf("%s: code = %v, want %v", tt.name, d.Code, tt.code)
		}
		if len(d.Notes) != 0 {
			t.Fatalf("%s: unexpected notes %v", tt.name, d.Notes)
		}
	}
}

func TestRenderIsPureAndDeterministic(t *testing.T) {
	build := func() *IDEInfo {
		info := NewIDEInfo()
		table := symbols.LeadingAccessTable{}
		for _, n := range []string{"z", "b", "y", "a", "x"} {
			table[symbols.New(n)] = symbols.TypeParamAlias()
		}
		info.Record(sp(0, 1), AliasesFromLeadingAccess(table))
		info.Record(sp(2, 3), &MacroCallInfo{Module: symbols.MustParseModuleIdent("M"), Name: "f"})
		info.Freeze()
		return info
	}
	first := RenderAll(build())
	for range 5 {
		again := RenderAll(build())
		if len(again) != len(first) {
			t.Fatalf("render count changed")
		}
		for i := range first {
			if again[i].Message != first[i].Message {
				t.Fatalf("render %d differs: %q vs %q", i, again[i].Message, first[i].Message)
			}
		}
	}
	if first[0].Message != "Possible in-scope names: 'a', 'b', 'x', 'y', or 'z'" {
		t.Fatalf("message = %q", first[0].Message)
	}

	info := build()
	before := info.Entries()
	_ = RenderAll(info)
	_ = RenderAll(info)
	after := info.Entries()
	if len(before) != len(after) {
		t.Fatalf("rendering changed the store")
	}
}

func TestReportAllFeedsReporter(t *testing.T) {
	info := NewIDEInfo()
	info.Record(sp(0, 1), ExpandedLambda{})
	info.Record(sp(1, 2), NamedEllipsis("f"))
	bag := diag.NewBag(0)
	ReportAll(info, diag.BagReporter{Bag: bag})
	if bag.Len() != 2 || bag.HasErrors() {
		t.Fatalf("bag len=%d errors=%v", bag.Len(), bag.HasErrors())
	}
}

type foreignAnnotation struct{}

func (foreignAnnotation) Kind() AnnotationKind { return KindInvalid }
func (foreignAnnotation) isAnnotation()        {}

func TestRenderUnknownAnnotationPanics(t *testing.T) {
	expectPanic(t, "unknown annotation", func() { Render(sp(0, 1), foreignAnnotation{}) })
	expectPanic(t, "nameless macro", func() { Render(sp(0, 1), &MacroCallInfo{}) })
}

func TestEllipsisFormsThroughAnnotation(t *testing.T) {
	tests := []struct {
		ann  Annotation
		form EllipsisKind
		want string
	}{
		{PositionalEllipsis("_0"), EllipsisPositional, "Ellipsis expansion: _0"},
		{NamedEllipsis("a", "b"), EllipsisNamed, "Ellipsis expansion: a: _, b: _"},
	}
	for _, tt := range tests {
		if tt.ann.Kind() != KindEllipsisMatchEntries {
			t.Fatalf("Kind() = %v, want %v", tt.ann.Kind(), KindEllipsisMatchEntries)
		}
		e, ok := tt.ann.(*EllipsisMatchEntries)
		if !ok || e.Form != tt.form {
			t.Fatalf("annotation %#v, want form %v", tt.ann, tt.form)
		}
		if got := Render(sp(0, 1), tt.ann).Message; got != tt.want {
			t.Fatalf("message = %q, want %q", got, tt.want)
		}
	}
}
