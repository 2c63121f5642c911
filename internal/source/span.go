package source

import (
	"cmp"
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether offset off of file lies in [Start, End).
// An empty span contains nothing.
func (s Span) Contains(file FileID, off uint32) bool {
	return s.File == file && s.Start <= off && off < s.End
}

// Includes reports whether other lies fully inside s.
func (s Span) Includes(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Compare orders spans by file, then start, then end.
func (s Span) Compare(other Span) int {
	if c := cmp.Compare(s.File, other.File); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Start, other.Start); c != 0 {
		return c
	}
	return cmp.Compare(s.End, other.End)
}
