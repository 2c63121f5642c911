package ide

import (
	"fmt"
	"strings"

	"moveide/internal/diag"
	"moveide/internal/source"
	"moveide/internal/strutil"
	"moveide/internal/types"
)

// RenderRevision changes whenever Render produces different text for the
// same annotation. Caches of rendered output are keyed on it.
const RenderRevision uint16 = 1

// Render turns one recorded annotation into an informational diagnostic.
// It does not modify ann.
func Render(sp source.Span, ann Annotation) diag.Diagnostic {
	switch a := ann.(type) {
	case *MacroCallInfo:
		return renderMacroCall(sp, a)
	case ExpandedLambda:
		return diag.NewInfo(diag.IDEExpandedLambda, sp, "expanded lambda")
	case *AliasAutocompleteInfo:
		return diag.NewInfo(diag.IDEAutocomplete, sp, "Possible in-scope names: "+pathCandidates(a))
	case *DotAutocompleteInfo:
		return diag.NewInfo(diag.IDEAutocomplete, sp, "Possible dot names: "+dotCandidates(a))
	case *MissingMatchArmsInfo:
		return diag.NewInfo(diag.IDEMissingMatchArms, sp,
			"Missing arms: "+strutil.FormatOxfordList("and", "'%s'", a.Arms))
	case *EllipsisMatchEntries:
		return diag.NewInfo(diag.IDEEllipsisExpansion, sp, "Ellipsis expansion: "+ellipsisEntries(a))
	default:
		panic(fmt.Sprintf("ide: cannot render annotation of type %T", ann))
	}
}

// RenderAll renders every entry of info in insertion order.
func RenderAll(info *IDEInfo) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, info.Len())
	for sp, ann := range info.All() {
		out = append(out, Render(sp, ann))
	}
	return out
}

// ReportAll forwards every rendered entry to r.
func ReportAll(info *IDEInfo, r diag.Reporter) {
	for sp, ann := range info.All() {
		d := Render(sp, ann)
		p := diag.StartInfo(r, d.Code, d.Primary, d.Message)
		for _, n := range d.Notes {
			p.Note(n.Span, n.Msg)
		}
		p.Send()
	}
}

func renderMacroCall(sp source.Span, m *MacroCallInfo) diag.Diagnostic {
	if m.Name.IsEmpty() {
		panic("ide: macro call info without a function name")
	}
	d := diag.NewInfo(diag.IDEMacroCallInfo, sp, fmt.Sprintf("Called %s::%s", m.Module, m.Name))
	if !m.MethodName.IsEmpty() {
		d = d.WithNote(sp, "as method call "+m.MethodName.String())
	}
	if len(m.TypeArguments) > 0 {
		d = d.WithNote(sp, "Type arguments: "+types.List(m.TypeArguments))
	}
	if len(m.ByValueArgs) > 0 {
		d = d.WithNote(sp, "Subject arg: "+m.ByValueArgs[0].String())
	}
	return d
}

func pathCandidates(a *AliasAutocompleteInfo) string {
	names := make([]string, 0, a.Len())
	for _, m := range a.Members() {
		names = append(names, fmt.Sprintf("%s -> %s::%s", m.Name, m.Module, m.Member))
	}
	for _, m := range a.Modules() {
		names = append(names, fmt.Sprintf("%s -> %s", m.Name, m.Module))
	}
	for _, addr := range a.Addresses() {
		names = append(names, fmt.Sprintf("%s -> %s", addr.Name, addr.Address))
	}
	for _, tp := range a.TypeParams() {
		names = append(names, tp.String())
	}
	return strutil.FormatOxfordList("or", "'%s'", names)
}

func dotCandidates(a *DotAutocompleteInfo) string {
	names := make([]string, 0, len(a.Methods)+len(a.Fields))
	for _, m := range a.Methods {
		names = append(names, fmt.Sprintf("%s::%s", m.TargetModule, m.MethodName))
	}
	for _, f := range a.Fields {
		names = append(names, f.Name.String())
	}
	return strutil.FormatOxfordList("or", "'%s'", names)
}

func ellipsisEntries(e *EllipsisMatchEntries) string {
	names := make([]string, len(e.Names))
	for i, n := range e.Names {
		if e.Form == EllipsisNamed {
			names[i] = n.String() + ": _"
		} else {
			names[i] = n.String()
		}
	}
	return strings.Join(names, ", ")
}
