package cursor

import (
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"moveide/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// lineBounds returns [start, end) of a 0-based line, end excluding '\n'.
func lineBounds(file *source.File, line int) (uint32, uint32) {
	contentLen := safeUint32(len(file.Content))
	var start uint32
	if line > 0 {
		start = file.LineIdx[line-1] + 1
	}
	end := contentLen
	if line < len(file.LineIdx) {
		end = file.LineIdx[line]
	}
	return start, end
}

// utf16Len is the number of UTF-16 code units r occupies.
func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// OffsetForPosition maps an LSP position (0-based line, UTF-16 character)
// to a byte offset. Positions past the end of a line clamp to the line end,
// positions past the last line clamp to the end of the file. A character
// that lands inside a surrogate pair resolves to the start of that rune.
func OffsetForPosition(file *source.File, pos protocol.Position) uint32 {
	if file == nil || len(file.Content) == 0 {
		return 0
	}
	line := int(pos.Line)
	if line > len(file.LineIdx) {
		return safeUint32(len(file.Content))
	}
	start, end := lineBounds(file, line)
	want := int(pos.Character)
	units := 0
	off := start
	for off < end && units < want {
		r, size := utf8.DecodeRune(file.Content[off:end])
		if units+utf16Len(r) > want {
			break
		}
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return off
}

// PositionForOffset is the inverse of OffsetForPosition. Offsets past the
// end of the file clamp to the end.
func PositionForOffset(file *source.File, offset uint32) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	offset = min(offset, safeUint32(len(file.Content)))
	line, _ := slices.BinarySearch(file.LineIdx, offset)
	start, _ := lineBounds(file, line)
	units := 0
	for off := start; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return protocol.Position{
		Line:      protocol.UInteger(safeUint32(line)),
		Character: protocol.UInteger(safeUint32(units)),
	}
}

// RangeForSpan converts a byte span into an LSP range.
func RangeForSpan(file *source.File, sp source.Span) protocol.Range {
	if file == nil {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: PositionForOffset(file, sp.Start),
		End:   PositionForOffset(file, sp.End),
	}
}
