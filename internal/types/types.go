package types

import (
	"fmt"
	"strings"

	"moveide/internal/symbols"
)

// Kind enumerates the shapes of a resolved type.
type Kind uint8

const (
	KindInvalid  Kind = iota
	KindUnit          // ()
	KindBuiltin       // u8 .. u256, bool, address, signer, vector<T>
	KindApply         // M::S<T..>
	KindParam         // T
	KindRef           // &T / &mut T
	KindFun           // |A, B| -> R
	KindAnything      // _ (not yet inferred)
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBuiltin:
		return "builtin"
	case KindApply:
		return "apply"
	case KindParam:
		return "param"
	case KindRef:
		return "ref"
	case KindFun:
		return "fun"
	case KindAnything:
		return "anything"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact, display-oriented descriptor of a resolved type.
type Type struct {
	Kind    Kind
	Name    symbols.Symbol      // builtin / datatype / parameter name
	Module  symbols.ModuleIdent // for KindApply
	Args    []Type              // type arguments; for KindRef the single referent; for KindFun params then result
	Mutable bool                // for KindRef
}

// Descriptor helpers ---------------------------------------------------------

func Unit() Type     { return Type{Kind: KindUnit} }
func Anything() Type { return Type{Kind: KindAnything} }

// Builtin describes a primitive, e.g. Builtin("u64") or Builtin("vector", elem).
func Builtin(name string, args ...Type) Type {
	return Type{Kind: KindBuiltin, Name: symbols.New(name), Args: args}
}

// Apply describes a user datatype instantiation.
func Apply(module symbols.ModuleIdent, name string, args ...Type) Type {
	return Type{Kind: KindApply, Module: module, Name: symbols.New(name), Args: args}
}

// Param describes a type parameter.
func Param(name string) Type {
	return Type{Kind: KindParam, Name: symbols.New(name)}
}

// Ref describes &T or &mut T depending on the mutable flag.
func Ref(elem Type, mutable bool) Type {
	return Type{Kind: KindRef, Args: []Type{elem}, Mutable: mutable}
}

// Fun describes a lambda type; the last element of sig is the result.
func Fun(params []Type, result Type) Type {
	args := make([]Type, 0, len(params)+1)
	args = append(args, params...)
	args = append(args, result)
	return Type{Kind: KindFun, Args: args}
}

func (t Type) String() string {
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

const maxLabelDepth = 16

func (t Type) write(b *strings.Builder, depth int) {
	if depth > maxLabelDepth {
		b.WriteString("...")
		return
	}
	switch t.Kind {
	case KindUnit:
		b.WriteString("()")
	case KindAnything:
		b.WriteString("_")
	case KindParam:
		b.WriteString(t.Name.String())
	case KindBuiltin:
		b.WriteString(t.Name.String())
		writeArgs(b, t.Args, depth)
	case KindApply:
		b.WriteString(t.Module.String())
		b.WriteString("::")
		b.WriteString(t.Name.String())
		writeArgs(b, t.Args, depth)
	case KindRef:
		if t.Mutable {
			b.WriteString("&mut ")
		} else {
			b.WriteString("&")
		}
		if len(t.Args) == 1 {
			t.Args[0].write(b, depth+1)
		} else {
			b.WriteString("?")
		}
	case KindFun:
		b.WriteByte('|')
		n := len(t.Args) - 1
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			t.Args[i].write(b, depth+1)
		}
		b.WriteString("| -> ")
		if n >= 0 {
			t.Args[n].write(b, depth+1)
		} else {
			b.WriteString("()")
		}
	default:
		b.WriteString("?")
	}
}

func writeArgs(b *strings.Builder, args []Type, depth int) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b, depth+1)
	}
	b.WriteByte('>')
}

// List renders a list of types separated by ", ".
func List(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
