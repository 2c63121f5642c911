package fixture

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"moveide/internal/ide"
	"moveide/internal/source"
	"moveide/internal/symbols"
	"moveide/internal/types"
)

// Replay records every annotation of f, located in file, into sink in
// fixture order.
func Replay(fs *source.FileSet, file source.FileID, f *File, sink ide.Sink) error {
	src := fs.Get(file)
	for i := range f.Annotations {
		a := &f.Annotations[i]
		sp, err := locate(src, a)
		if err != nil {
			return fmt.Errorf("annotation #%d (%s): %w", i+1, a.Kind, err)
		}
		ann, err := build(a)
		if err != nil {
			return fmt.Errorf("annotation #%d (%s): %w", i+1, a.Kind, err)
		}
		sink.Record(sp, ann)
	}
	return nil
}

func locate(f *source.File, a *Annotation) (source.Span, error) {
	if a.Anchor != "" {
		nth := max(a.Occurrence, 1)
		from := 0
		for n := 1; ; n++ {
			idx := bytes.Index(f.Content[from:], []byte(a.Anchor))
			if idx < 0 {
				return source.Span{}, fmt.Errorf("anchor %q: occurrence %d not found", a.Anchor, nth)
			}
			from += idx
			if n == nth {
				break
			}
			from++
		}
		start, err := safecast.Conv[uint32](from)
		if err != nil {
			return source.Span{}, err
		}
		length, err := safecast.Conv[uint32](len(a.Anchor))
		if err != nil {
			return source.Span{}, err
		}
		return source.Span{File: f.ID, Start: start, End: start + length}, nil
	}

	if a.Line <= 0 || a.Column <= 0 {
		return source.Span{}, fmt.Errorf("either anchor or line and column (1-based) are required")
	}
	line, err := safecast.Conv[uint32](a.Line)
	if err != nil {
		return source.Span{}, err
	}
	col, err := safecast.Conv[uint32](a.Column)
	if err != nil {
		return source.Span{}, err
	}
	length, err := safecast.Conv[uint32](a.Length)
	if err != nil {
		return source.Span{}, fmt.Errorf("invalid length %d: %w", a.Length, err)
	}
	start := f.Offset(source.LineCol{Line: line, Col: col})
	sp := source.Span{File: f.ID, Start: start, End: min(start+length, f.Len())}
	// пустой span курсор не найдёт: расширяем до одного байта
	if sp.Empty() && sp.End < f.Len() {
		sp.End++
	}
	return sp, nil
}

func build(a *Annotation) (ide.Annotation, error) {
	switch a.Kind {
	case ide.KindMacroCall.String():
		return buildMacroCall(a)
	case ide.KindExpandedLambda.String():
		return ide.ExpandedLambda{}, nil
	case ide.KindDotAutocomplete.String():
		return buildDot(a)
	case ide.KindPathAutocomplete.String():
		return buildPath(a)
	case ide.KindMissingMatchArms.String():
		return buildArms(a)
	case ide.KindEllipsisMatchEntries.String():
		return buildEllipsis(a)
	default:
		return nil, fmt.Errorf("unknown annotation kind %q", a.Kind)
	}
}

func buildMacroCall(a *Annotation) (ide.Annotation, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("macro_call needs a name")
	}
	module, err := symbols.ParseModuleIdent(a.Module)
	if err != nil {
		return nil, err
	}
	tyArgs, err := types.ParseList(a.TypeArgs)
	if err != nil {
		return nil, err
	}
	if len(a.Args) > 1 {
		return nil, fmt.Errorf("macro_call takes at most one by-value argument, got %d", len(a.Args))
	}
	info := &ide.MacroCallInfo{
		Module:        module,
		Name:          symbols.New(a.Name),
		MethodName:    symbols.New(a.Method),
		TypeArguments: tyArgs,
	}
	for _, arg := range a.Args {
		e := types.Expr{Text: arg.Text, Type: types.Anything()}
		if arg.Type != "" {
			if e.Type, err = types.Parse(arg.Type); err != nil {
				return nil, err
			}
		}
		info.ByValueArgs = append(info.ByValueArgs, e)
	}
	return info, nil
}

func buildDot(a *Annotation) (ide.Annotation, error) {
	info := &ide.DotAutocompleteInfo{}
	for _, m := range a.Methods {
		module, err := symbols.ParseModuleIdent(m.Module)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		fn := m.Function
		if fn == "" {
			fn = m.Name
		}
		info.Methods = append(info.Methods, ide.NewAutocompleteMethod(symbols.New(m.Name), module, symbols.New(fn)))
	}
	for _, f := range a.Fields {
		ty := types.Anything()
		if f.Type != "" {
			var err error
			if ty, err = types.Parse(f.Type); err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		info.Fields = append(info.Fields, ide.FieldCandidate{Name: symbols.New(f.Name), Type: ty})
	}
	return info, nil
}

// buildPath fills the alias table the fixture describes and runs it through
// the matching projection, the same way name resolution would.
func buildPath(a *Annotation) (ide.Annotation, error) {
	switch a.Table {
	case "", "leading":
		table := make(symbols.LeadingAccessTable, len(a.Aliases))
		for _, al := range a.Aliases {
			entry, err := leadingEntry(al)
			if err != nil {
				return nil, err
			}
			table[symbols.New(al.Name)] = entry
		}
		return ide.AliasesFromLeadingAccess(table), nil
	case "member":
		table := make(symbols.MemberTable, len(a.Aliases))
		for _, al := range a.Aliases {
			entry, err := leadingEntry(al)
			if err != nil {
				return nil, err
			}
			switch entry.Kind {
			case symbols.AccessMember:
				table[symbols.New(al.Name)] = symbols.MemberOnlyAlias(entry.Module, entry.Member)
			case symbols.AccessTypeParam:
				table[symbols.New(al.Name)] = symbols.MemberTypeParam()
			default:
				return nil, fmt.Errorf("alias %s: member tables hold only members and type parameters", al.Name)
			}
		}
		return ide.AliasesFromMembers(table), nil
	default:
		return nil, fmt.Errorf("unknown alias table %q (expected leading|member)", a.Table)
	}
}

func leadingEntry(al Alias) (symbols.LeadingAccessEntry, error) {
	if al.Name == "" {
		return symbols.LeadingAccessEntry{}, fmt.Errorf("alias without a name")
	}
	switch al.Kind {
	case "address":
		addr, err := symbols.ParseAddress(al.Address)
		if err != nil {
			return symbols.LeadingAccessEntry{}, fmt.Errorf("alias %s: %w", al.Name, err)
		}
		return symbols.AddressAlias(addr), nil
	case "module":
		m, err := symbols.ParseModuleIdent(al.Module)
		if err != nil {
			return symbols.LeadingAccessEntry{}, fmt.Errorf("alias %s: %w", al.Name, err)
		}
		return symbols.ModuleAlias(m), nil
	case "member":
		m, err := symbols.ParseModuleIdent(al.Module)
		if err != nil {
			return symbols.LeadingAccessEntry{}, fmt.Errorf("alias %s: %w", al.Name, err)
		}
		if al.Member == "" {
			return symbols.LeadingAccessEntry{}, fmt.Errorf("alias %s: member alias needs a member", al.Name)
		}
		return symbols.MemberAlias(m, symbols.New(al.Member)), nil
	case "type_param":
		return symbols.TypeParamAlias(), nil
	default:
		return symbols.LeadingAccessEntry{}, fmt.Errorf("alias %s: unknown kind %q", al.Name, al.Kind)
	}
}

func buildArms(a *Annotation) (ide.Annotation, error) {
	info := &ide.MissingMatchArmsInfo{}
	for i, arm := range a.Arms {
		desc, err := missingArm(arm)
		if err != nil {
			return nil, fmt.Errorf("arm #%d: %w", i+1, err)
		}
		// проверяем здесь, чтобы ошибка фикстуры не стала паникой в SuggestArm
		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("arm #%d: %w", i+1, err)
		}
		info.Arms = append(info.Arms, ide.SuggestArm(desc))
	}
	return info, nil
}

func missingArm(arm Arm) (ide.MissingArm, error) {
	shape, err := ide.ParseArmShape(arm.Shape)
	if err != nil {
		return ide.MissingArm{}, err
	}
	desc := ide.MissingArm{
		Shape:      shape,
		Type:       symbols.New(arm.Type),
		Variant:    symbols.New(arm.Variant),
		Name:       symbols.New(arm.Name),
		FieldCount: arm.Count,
		Fields:     symbols.NewList(arm.Fields...),
	}
	if arm.Module != "" {
		if desc.Module, err = symbols.ParseModuleIdent(arm.Module); err != nil {
			return ide.MissingArm{}, err
		}
	}
	if arm.Value != "" {
		if desc.Value, err = types.ParseValue(arm.Value); err != nil {
			return ide.MissingArm{}, err
		}
	}
	return desc, nil
}

func buildEllipsis(a *Annotation) (ide.Annotation, error) {
	names := symbols.NewList(a.Names...)
	switch a.Ellipsis {
	case "", "positional":
		return ide.PositionalEllipsis(names...), nil
	case "named":
		return ide.NamedEllipsis(names...), nil
	default:
		return nil, fmt.Errorf("unknown ellipsis kind %q (expected positional|named)", a.Ellipsis)
	}
}
