package source

import (
	"testing"
)

func TestSpan_Contains(t *testing.T) {
	span := Span{File: 1, Start: 10, End: 14}
	tests := []struct {
		name string
		file FileID
		off  uint32
		want bool
	}{
		{name: "at start", file: 1, off: 10, want: true},
		{name: "inside", file: 1, off: 12, want: true},
		{name: "last byte", file: 1, off: 13, want: true},
		{name: "at end is outside (half-open)", file: 1, off: 14, want: false},
		{name: "one past end", file: 1, off: 15, want: false},
		{name: "before start", file: 1, off: 9, want: false},
		{name: "other file", file: 2, off: 12, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.file, tt.off); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.file, tt.off, got, tt.want)
			}
		})
	}
}

func TestSpan_ContainsEmptySpan(t *testing.T) {
	span := Span{File: 0, Start: 7, End: 7}
	for _, off := range []uint32{6, 7, 8} {
		if span.Contains(0, off) {
			t.Errorf("empty span [7,7) contains %d", off)
		}
	}
}

func TestSpan_Compare(t *testing.T) {
	a := Span{File: 0, Start: 1, End: 5}
	tests := []struct {
		name  string
		other Span
		want  int
	}{
		{"equal", Span{File: 0, Start: 1, End: 5}, 0},
		{"later file", Span{File: 1, Start: 0, End: 1}, -1},
		{"earlier start", Span{File: 0, Start: 0, End: 9}, 1},
		{"longer", Span{File: 0, Start: 1, End: 6}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Compare(tt.other); got != tt.want {
				t.Errorf("Compare(%v) = %d, want %d", tt.other, got, tt.want)
			}
		})
	}
}

func TestSpan_Includes(t *testing.T) {
	outer := Span{File: 3, Start: 4, End: 12}
	tests := []struct {
		inner Span
		want  bool
	}{
		{Span{File: 3, Start: 4, End: 12}, true},
		{Span{File: 3, Start: 6, End: 8}, true},
		{Span{File: 3, Start: 12, End: 12}, true},
		{Span{File: 3, Start: 2, End: 8}, false},
		{Span{File: 3, Start: 6, End: 13}, false},
		{Span{File: 4, Start: 6, End: 8}, false},
	}
	for _, tt := range tests {
		if got := outer.Includes(tt.inner); got != tt.want {
			t.Errorf("Includes(%v) = %v, want %v", tt.inner, got, tt.want)
		}
	}
}
