package strutil

import "testing"

func TestFormatOxfordList(t *testing.T) {
	tests := []struct {
		name  string
		conj  string
		items []string
		want  string
	}{
		{"empty", "or", nil, ""},
		{"one", "or", []string{"a"}, "'a'"},
		{"two", "or", []string{"a", "b"}, "'a' or 'b'"},
		{"three", "and", []string{"a", "b", "c"}, "'a', 'b', and 'c'"},
		{"four", "or", []string{"a", "b", "c", "d"}, "'a', 'b', 'c', or 'd'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOxfordList(tt.conj, "'%s'", tt.items); got != tt.want {
				t.Fatalf("FormatOxfordList() = %q, want %q", got, tt.want)
			}
		})
	}
}

type stringer string

func (s stringer) String() string { return "<" + string(s) + ">" }

func TestFormatOxfordListUsesStringer(t *testing.T) {
	got := FormatOxfordList("and", "%v", []stringer{"x", "y"})
	if got != "<x> and <y>" {
		t.Fatalf("got %q", got)
	}
}
