package types

import (
	"testing"

	"moveide/internal/symbols"
)

func TestTypeString(t *testing.T) {
	opt := symbols.MustParseModuleIdent("0x1::option")
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"unit", Unit(), "()"},
		{"anything", Anything(), "_"},
		{"param", Param("T"), "T"},
		{"vector", Builtin("vector", Builtin("u8")), "vector<u8>"},
		{"apply", Apply(opt, "Option", Param("T")), "0x1::option::Option<T>"},
		{"ref", Ref(Builtin("u64"), false), "&u64"},
		{"mut ref", Ref(Apply(opt, "Option", Builtin("bool")), true), "&mut 0x1::option::Option<bool>"},
		{"fun", Fun([]Type{Builtin("u64"), Param("T")}, Builtin("bool")), "|u64, T| -> bool"},
		{"thunk", Fun(nil, Unit()), "|| -> ()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"u64",
		"T",
		"_",
		"()",
		"vector<vector<u8>>",
		"0x2::coin::Coin<0x2::sui::SUI>",
		"std::option::Option<T>",
		"M::S",
		"&mut vector<T>",
		"&0x1::string::String",
		"|u64, T| -> bool",
		"|| -> ()",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			typ, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", in, err)
			}
			if got := typ.String(); got != in {
				t.Fatalf("round trip = %q, want %q", got, in)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "vector<", "T<u8>", "a::b::c::d", "u64 u64", "|u64 -> bool"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestList(t *testing.T) {
	got := List([]Type{Param("T"), Builtin("u8")})
	if got != "T, u8" {
		t.Fatalf("List() = %q", got)
	}
	if List(nil) != "" {
		t.Fatalf("empty list must render empty")
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"true", "true"},
		{"false", "false"},
		{"@0x1", "@0x1"},
		{"5", "5"},
		{"5u8", "5u8"},
		{"1_000u64", "1000u64"},
		{"0xffu16", "255u16"},
		{"340282366920938463463374607431768211455u128", "340282366920938463463374607431768211455u128"},
		{`x"0a0B"`, `x"0a0b"`},
		{`b"hi"`, `x"6869"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseValue(tt.in)
			if err != nil {
				t.Fatalf("ParseValue(%q): %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"256u8", "abc", "u8", `x"zz"`, "@"} {
		if v, err := ParseValue(bad); err == nil {
			t.Errorf("ParseValue(%q) = %v, want error", bad, v)
		}
	}
}

func TestExprDisplaysSourceText(t *testing.T) {
	e := Expr{Text: "x", Type: Param("T")}
	if e.String() != "x" {
		t.Fatalf("Expr.String() = %q", e.String())
	}
}
