package ide

import (
	"moveide/internal/symbols"
	"moveide/internal/types"
)

// AnnotationKind names the category of an annotation.
type AnnotationKind uint8

const (
	KindInvalid AnnotationKind = iota
	KindMacroCall
	KindExpandedLambda
	KindDotAutocomplete
	KindPathAutocomplete
	KindMissingMatchArms
	KindEllipsisMatchEntries
)

func (k AnnotationKind) String() string {
	switch k {
	case KindMacroCall:
		return "macro_call"
	case KindExpandedLambda:
		return "expanded_lambda"
	case KindDotAutocomplete:
		return "dot_autocomplete"
	case KindPathAutocomplete:
		return "path_autocomplete"
	case KindMissingMatchArms:
		return "missing_match_arms"
	case KindEllipsisMatchEntries:
		return "ellipsis_match_entries"
	default:
		return "invalid"
	}
}

// Annotation is one IDE-relevant fact. The set of implementations is closed:
// *MacroCallInfo, ExpandedLambda, *DotAutocompleteInfo,
// *AliasAutocompleteInfo, *MissingMatchArmsInfo and *EllipsisMatchEntries.
type Annotation interface {
	Kind() AnnotationKind
	isAnnotation()
}

// MacroCallInfo describes a macro call site.
type MacroCallInfo struct {
	// Module where the macro is defined
	Module symbols.ModuleIdent
	// Name of the macro function
	Name symbols.Symbol
	// MethodName is set when the macro was invoked as a dot call
	MethodName symbols.Symbol
	// TypeArguments at the call site
	TypeArguments []types.Type
	// ByValueArgs holds at most the receiver argument
	ByValueArgs []types.Expr
}

// ExpandedLambda marks a site where a lambda was expanded.
type ExpandedLambda struct{}

// AutocompleteMethod is a function callable with dot syntax on a receiver.
type AutocompleteMethod struct {
	MethodName     symbols.Symbol
	TargetModule   symbols.ModuleIdent
	TargetFunction symbols.Symbol
}

func NewAutocompleteMethod(methodName symbols.Symbol, module symbols.ModuleIdent, function symbols.Symbol) AutocompleteMethod {
	return AutocompleteMethod{
		MethodName:     methodName,
		TargetModule:   module,
		TargetFunction: function,
	}
}

// Compare orders methods by name, then by target.
func (m AutocompleteMethod) Compare(other AutocompleteMethod) int {
	if c := m.MethodName.Compare(other.MethodName); c != 0 {
		return c
	}
	if c := m.TargetModule.Compare(other.TargetModule); c != 0 {
		return c
	}
	return m.TargetFunction.Compare(other.TargetFunction)
}

// FieldCandidate is a struct field reachable with dot syntax.
type FieldCandidate struct {
	Name symbols.Symbol
	Type types.Type
}

// DotAutocompleteInfo lists what may follow `receiver.`.
type DotAutocompleteInfo struct {
	Methods []AutocompleteMethod
	Fields  []FieldCandidate
}

// MissingMatchArmsInfo lists arms that would make a match exhaustive.
// The suggestions carry no locations: a consumer that inserts them must
// recompute spans afterwards.
type MissingMatchArmsInfo struct {
	Arms []PatternSuggestion
}

// EllipsisKind tells whether `..` stood in a positional or a named pattern.
type EllipsisKind uint8

const (
	EllipsisPositional EllipsisKind = iota
	EllipsisNamed
)

// EllipsisMatchEntries lists the wildcard binders a `..` expands to.
type EllipsisMatchEntries struct {
	Form  EllipsisKind
	Names []symbols.Symbol
}

func PositionalEllipsis(names ...symbols.Symbol) *EllipsisMatchEntries {
	return &EllipsisMatchEntries{Form: EllipsisPositional, Names: names}
}

func NamedEllipsis(names ...symbols.Symbol) *EllipsisMatchEntries {
	return &EllipsisMatchEntries{Form: EllipsisNamed, Names: names}
}

func (*MacroCallInfo) Kind() AnnotationKind         { return KindMacroCall }
func (ExpandedLambda) Kind() AnnotationKind         { return KindExpandedLambda }
func (*DotAutocompleteInfo) Kind() AnnotationKind   { return KindDotAutocomplete }
func (*AliasAutocompleteInfo) Kind() AnnotationKind { return KindPathAutocomplete }
func (*MissingMatchArmsInfo) Kind() AnnotationKind  { return KindMissingMatchArms }
func (*EllipsisMatchEntries) Kind() AnnotationKind  { return KindEllipsisMatchEntries }

func (*MacroCallInfo) isAnnotation()         {}
func (ExpandedLambda) isAnnotation()         {}
func (*DotAutocompleteInfo) isAnnotation()   {}
func (*AliasAutocompleteInfo) isAnnotation() {}
func (*MissingMatchArmsInfo) isAnnotation()  {}
func (*EllipsisMatchEntries) isAnnotation()  {}
