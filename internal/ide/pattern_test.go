package ide

import (
	"testing"

	"moveide/internal/symbols"
	"moveide/internal/types"
)

func TestPatternSuggestionString(t *testing.T) {
	m := symbols.MustParseModuleIdent("M")
	pkg := symbols.MustParseModuleIdent("0x2::shapes")
	tests := []struct {
		name string
		in   PatternSuggestion
		want string
	}{
		{"wildcard", Wildcard{}, "_"},
		{"binder", Binder{Name: "x"}, "x"},
		{"value", ValueSuggestion{Value: types.NumValue(types.ValueU8, 5)}, "5u8"},
		{"positional struct", UnpackPositionalStruct{Module: m, Name: "Pair", FieldCount: 2}, "M::Pair(_, _)"},
		{"positional struct zero", UnpackPositionalStruct{Module: m, Name: "Unit"}, "M::Unit()"},
		{"named struct", UnpackNamedStruct{Module: pkg, Name: "Point", Fields: symbols.NewList("x", "y")}, "0x2::shapes::Point { x , y }"},
		{"named struct empty", UnpackNamedStruct{Module: m, Name: "S"}, "M::S { }"},
		{"empty variant", UnpackEmptyVariant{Module: m, Enum: "Opt", Variant: "None"}, "M::Opt::None"},
		{"positional variant", UnpackPositionalVariant{Module: m, Enum: "Opt", Variant: "Some", FieldCount: 1}, "M::Opt::Some(_)"},
		{"positional variant zero", UnpackPositionalVariant{Module: m, Enum: "E", Variant: "V"}, "M::E::V()"},
		{"named variant", UnpackNamedVariant{Module: m, Enum: "Shape", Variant: "Circle", Fields: symbols.NewList("r")}, "M::Shape::Circle { r }"},
		{"named variant empty", UnpackNamedVariant{Module: m, Enum: "E", Variant: "V"}, "M::E::V { }"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEmptyAndPositionalVariantDiffer(t *testing.T) {
	m := symbols.MustParseModuleIdent("M")
	empty := SuggestArm(MissingArm{Shape: ShapeEmptyVariant, Module: m, Type: "E", Variant: "V"})
	positional := SuggestArm(MissingArm{Shape: ShapePositionalVariant, Module: m, Type: "E", Variant: "V"})
	if empty.String() == positional.String() {
		t.Fatalf("empty and zero-field positional variants must render differently, both %q", empty)
	}
	if got := positional.String(); got != "M::E::V()" {
		t.Fatalf("positional = %q, want M::E::V()", got)
	}
}

func TestSuggestArmTagsShape(t *testing.T) {
	m := symbols.MustParseModuleIdent("M")
	tests := []struct {
		arm  MissingArm
		want string
	}{
		{MissingArm{Shape: ShapeWildcard}, "_"},
		{MissingArm{Shape: ShapeBinder, Name: "other"}, "other"},
		{MissingArm{Shape: ShapeValue, Value: types.BoolValue(false)}, "false"},
		{MissingArm{Shape: ShapePositionalStruct, Module: m, Type: "P", FieldCount: 3}, "M::P(_, _, _)"},
		{MissingArm{Shape: ShapeNamedStruct, Module: m, Type: "S", Fields: symbols.NewList("a")}, "M::S { a }"},
		{MissingArm{Shape: ShapeNamedVariant, Module: m, Type: "E", Variant: "V", Fields: symbols.NewList("a", "b")}, "M::E::V { a , b }"},
	}
	for _, tt := range tests {
		if got := SuggestArm(tt.arm).String(); got != tt.want {
			t.Fatalf("SuggestArm(%v) = %q, want %q", tt.arm.Shape, got, tt.want)
		}
	}
}

func TestMissingArmValidate(t *testing.T) {
	m := symbols.MustParseModuleIdent("M")
	bad := []MissingArm{
		{},
		{Shape: ShapeBinder},
		{Shape: ShapeValue},
		{Shape: ShapeEmptyVariant, Module: m, Type: "E"},
		{Shape: ShapePositionalStruct, Type: "S"},
		{Shape: ShapePositionalStruct, Module: m, Type: "S", Fields: symbols.NewList("a")},
		{Shape: ShapeNamedStruct, Module: m, Type: "S", FieldCount: 2},
		{Shape: ShapeNamedStruct, Module: m, Type: "S", Variant: "V"},
		{Shape: ShapePositionalVariant, Module: m, Type: "E", Variant: "V", FieldCount: -1},
	}
	for i, arm := range bad {
		if err := arm.Validate(); err == nil {
			t.Fatalf("case %d (%v): expected validation error", i, arm.Shape)
		}
	}
	expectPanic(t, "SuggestArm on invalid arm", func() { SuggestArm(MissingArm{Shape: ShapeBinder}) })
}

func TestParseArmShape(t *testing.T) {
	for s := ShapeWildcard; s <= ShapeNamedVariant; s++ {
		got, err := ParseArmShape(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseArmShape(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseArmShape("invalid"); err == nil {
		t.Fatalf("\"invalid\" must not parse")
	}
}
