package ide

import (
	"fmt"
	"strings"

	"moveide/internal/symbols"
	"moveide/internal/types"
)

// PatternSuggestion is the text of one match arm that could be added.
// Suggestions carry no locations; they are templates, not syntax trees.
type PatternSuggestion interface {
	String() string
	isPatternSuggestion()
}

type Wildcard struct{}

type Binder struct {
	Name symbols.Symbol
}

type ValueSuggestion struct {
	Value types.Value
}

// UnpackPositionalStruct renders as M::T(_, _).
type UnpackPositionalStruct struct {
	Module     symbols.ModuleIdent
	Name       symbols.Symbol
	FieldCount int
}

// UnpackNamedStruct renders as M::T { a , b }.
type UnpackNamedStruct struct {
	Module symbols.ModuleIdent
	Name   symbols.Symbol
	Fields []symbols.Symbol
}

// UnpackEmptyVariant is a tag-only variant: M::E::V, never followed by an
// argument list.
type UnpackEmptyVariant struct {
	Module  symbols.ModuleIdent
	Enum    symbols.Symbol
	Variant symbols.Symbol
}

// UnpackPositionalVariant renders as M::E::V(_, _), and as M::E::V() with
// zero fields.
type UnpackPositionalVariant struct {
	Module     symbols.ModuleIdent
	Enum       symbols.Symbol
	Variant    symbols.Symbol
	FieldCount int
}

type UnpackNamedVariant struct {
	Module  symbols.ModuleIdent
	Enum    symbols.Symbol
	Variant symbols.Symbol
	Fields  []symbols.Symbol
}

func (Wildcard) String() string { return "_" }

func (b Binder) String() string { return b.Name.String() }

func (v ValueSuggestion) String() string { return v.Value.String() }

func (s UnpackPositionalStruct) String() string {
	return s.Module.String() + "::" + s.Name.String() + wildcards(s.FieldCount)
}

func (s UnpackNamedStruct) String() string {
	return s.Module.String() + "::" + s.Name.String() + " " + namedFields(s.Fields)
}

func (s UnpackEmptyVariant) String() string {
	return s.Module.String() + "::" + s.Enum.String() + "::" + s.Variant.String()
}

func (s UnpackPositionalVariant) String() string {
	return s.Module.String() + "::" + s.Enum.String() + "::" + s.Variant.String() + wildcards(s.FieldCount)
}

func (s UnpackNamedVariant) String() string {
	return s.Module.String() + "::" + s.Enum.String() + "::" + s.Variant.String() + " " + namedFields(s.Fields)
}

// wildcards renders "(_, _, _)"; zero fields still yields "()".
func wildcards(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.Repeat("_, ", n-1) + "_)"
}

// namedFields renders "{ a , b }"; no fields yields "{ }".
func namedFields(fields []symbols.Symbol) string {
	if len(fields) == 0 {
		return "{ }"
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return "{ " + strings.Join(names, " , ") + " }"
}

func (Wildcard) isPatternSuggestion()                {}
func (Binder) isPatternSuggestion()                  {}
func (ValueSuggestion) isPatternSuggestion()         {}
func (UnpackPositionalStruct) isPatternSuggestion()  {}
func (UnpackNamedStruct) isPatternSuggestion()       {}
func (UnpackEmptyVariant) isPatternSuggestion()      {}
func (UnpackPositionalVariant) isPatternSuggestion() {}
func (UnpackNamedVariant) isPatternSuggestion()      {}

// ArmShape selects the kind of arm a match is missing.
type ArmShape uint8

const (
	ShapeInvalid ArmShape = iota
	ShapeWildcard
	ShapeBinder
	ShapeValue
	ShapePositionalStruct
	ShapeNamedStruct
	ShapeEmptyVariant
	ShapePositionalVariant
	ShapeNamedVariant
)

var armShapeNames = [...]string{
	ShapeInvalid:           "invalid",
	ShapeWildcard:          "wildcard",
	ShapeBinder:            "binder",
	ShapeValue:             "value",
	ShapePositionalStruct:  "positional_struct",
	ShapeNamedStruct:       "named_struct",
	ShapeEmptyVariant:      "empty_variant",
	ShapePositionalVariant: "positional_variant",
	ShapeNamedVariant:      "named_variant",
}

func (s ArmShape) String() string {
	if int(s) < len(armShapeNames) {
		return armShapeNames[s]
	}
	return armShapeNames[ShapeInvalid]
}

// ParseArmShape is the inverse of ArmShape.String.
func ParseArmShape(s string) (ArmShape, error) {
	for i, name := range armShapeNames {
		if i != int(ShapeInvalid) && name == s {
			return ArmShape(i), nil
		}
	}
	return ShapeInvalid, fmt.Errorf("unknown arm shape %q", s)
}

// MissingArm describes a constructor the exhaustiveness check found
// uncovered. Which fields matter depends on Shape:
//
//	binder               Name
//	value                Value
//	positional_*         Module, Type, [Variant], FieldCount
//	named_*              Module, Type, [Variant], Fields
//	empty_variant        Module, Type, Variant
type MissingArm struct {
	Shape      ArmShape
	Module     symbols.ModuleIdent
	Type       symbols.Symbol
	Variant    symbols.Symbol
	Name       symbols.Symbol
	Value      types.Value
	FieldCount int
	Fields     []symbols.Symbol
}

// Validate reports the first inconsistency between Shape and the payload.
func (a MissingArm) Validate() error {
	var (
		needsType    bool
		needsVariant bool
		positional   bool
		named        bool
	)
	switch a.Shape {
	case ShapeWildcard:
	case ShapeBinder:
		if a.Name.IsEmpty() {
			return fmt.Errorf("binder arm without a name")
		}
	case ShapeValue:
		if a.Value.Kind == types.ValueInvalid {
			return fmt.Errorf("value arm without a value")
		}
	case ShapePositionalStruct:
		needsType, positional = true, true
	case ShapeNamedStruct:
		needsType, named = true, true
	case ShapeEmptyVariant:
		needsType, needsVariant = true, true
	case ShapePositionalVariant:
		needsType, needsVariant, positional = true, true, true
	case ShapeNamedVariant:
		needsType, needsVariant, named = true, true, true
	default:
		return fmt.Errorf("invalid arm shape %d", a.Shape)
	}

	if needsType && (a.Type.IsEmpty() || a.Module.Module.IsEmpty()) {
		return fmt.Errorf("%s arm needs a module and a type name", a.Shape)
	}
	if needsVariant && a.Variant.IsEmpty() {
		return fmt.Errorf("%s arm needs a variant name", a.Shape)
	}
	if !needsVariant && !a.Variant.IsEmpty() {
		return fmt.Errorf("%s arm cannot name a variant", a.Shape)
	}
	if a.FieldCount < 0 {
		return fmt.Errorf("%s arm has negative field count %d", a.Shape, a.FieldCount)
	}
	if !positional && a.FieldCount != 0 {
		return fmt.Errorf("%s arm cannot have a field count", a.Shape)
	}
	if !named && len(a.Fields) > 0 {
		return fmt.Errorf("%s arm cannot have field names", a.Shape)
	}
	return nil
}

// SuggestArm turns a descriptor into a suggestion. An invalid descriptor is
// a checker bug and panics.
func SuggestArm(a MissingArm) PatternSuggestion {
	if err := a.Validate(); err != nil {
		panic(fmt.Errorf("ide: bad missing arm: %w", err))
	}
	switch a.Shape {
	case ShapeWildcard:
		return Wildcard{}
	case ShapeBinder:
		return Binder{Name: a.Name}
	case ShapeValue:
		return ValueSuggestion{Value: a.Value}
	case ShapePositionalStruct:
		return UnpackPositionalStruct{Module: a.Module, Name: a.Type, FieldCount: a.FieldCount}
	case ShapeNamedStruct:
		return UnpackNamedStruct{Module: a.Module, Name: a.Type, Fields: a.Fields}
	case ShapeEmptyVariant:
		return UnpackEmptyVariant{Module: a.Module, Enum: a.Type, Variant: a.Variant}
	case ShapePositionalVariant:
		return UnpackPositionalVariant{Module: a.Module, Enum: a.Type, Variant: a.Variant, FieldCount: a.FieldCount}
	default:
		return UnpackNamedVariant{Module: a.Module, Enum: a.Type, Variant: a.Variant, Fields: a.Fields}
	}
}
