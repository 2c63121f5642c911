package symbols

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Symbol is an identifier as written in source (function, field, alias,
// type parameter, ...). Symbols compare and sort by their NFC text.
type Symbol string

// NoSymbol marks an absent optional name.
const NoSymbol Symbol = ""

// New normalizes s to NFC so that visually identical identifiers compare equal.
func New(s string) Symbol {
	return Symbol(norm.NFC.String(s))
}

// NewList converts a list of raw names.
func NewList(names ...string) []Symbol {
	if len(names) == 0 {
		return nil
	}
	out := make([]Symbol, len(names))
	for i, n := range names {
		out[i] = New(n)
	}
	return out
}

func (s Symbol) String() string { return string(s) }

// IsEmpty reports whether the symbol is NoSymbol.
func (s Symbol) IsEmpty() bool { return s == NoSymbol }

// Compare orders symbols lexicographically.
func (s Symbol) Compare(other Symbol) int {
	return strings.Compare(string(s), string(other))
}
