package types

import (
	"fmt"
	"strings"

	"moveide/internal/symbols"
)

var builtinNames = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "u256": true,
	"bool": true, "address": true, "signer": true, "vector": true,
}

// Parse reads the textual form produced by Type.String back into a Type.
// Single-segment names that are not builtins are type parameters.
func Parse(s string) (Type, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return Type{}, fmt.Errorf("type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Type{}, fmt.Errorf("type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// ParseList parses every element of ss, stopping at the first error.
func ParseList(ss []string) ([]Type, error) {
	out := make([]Type, 0, len(ss))
	for _, s := range ss {
		t, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) expect(tok string) error {
	if !p.accept(tok) {
		return fmt.Errorf("expected %q at %d", tok, p.pos)
	}
	return nil
}

func (p *typeParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parseType() (Type, error) {
	switch {
	case p.accept("()"):
		return Unit(), nil
	case p.accept("&"):
		mutable := false
		save := p.pos
		if w := p.word(); w == "mut" {
			mutable = true
		} else {
			p.pos = save
		}
		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		return Ref(elem, mutable), nil
	case p.accept("|"):
		var params []Type
		if !p.accept("|") {
			for {
				t, err := p.parseType()
				if err != nil {
					return Type{}, err
				}
				params = append(params, t)
				if p.accept(",") {
					continue
				}
				if err := p.expect("|"); err != nil {
					return Type{}, err
				}
				break
			}
		}
		if err := p.expect("->"); err != nil {
			return Type{}, err
		}
		result, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		return Fun(params, result), nil
	}
	return p.parsePath()
}

func (p *typeParser) parsePath() (Type, error) {
	var segs []string
	for {
		w := p.word()
		if w == "" {
			return Type{}, fmt.Errorf("expected name at %d", p.pos)
		}
		segs = append(segs, w)
		if !p.accept("::") {
			break
		}
	}
	var args []Type
	if p.accept("<") {
		for {
			t, err := p.parseType()
			if err != nil {
				return Type{}, err
			}
			args = append(args, t)
			if p.accept(",") {
				continue
			}
			if err := p.expect(">"); err != nil {
				return Type{}, err
			}
			break
		}
	}

	if len(segs) == 1 {
		name := segs[0]
		switch {
		case name == "_":
			return Anything(), nil
		case builtinNames[name]:
			return Builtin(name, args...), nil
		case len(args) > 0:
			return Type{}, fmt.Errorf("type parameter %s cannot take arguments", name)
		default:
			return Param(name), nil
		}
	}
	if len(segs) > 3 {
		return Type{}, fmt.Errorf("too many path segments in %s", strings.Join(segs, "::"))
	}
	mident, err := symbols.ParseModuleIdent(strings.Join(segs[:len(segs)-1], "::"))
	if err != nil {
		return Type{}, err
	}
	return Apply(mident, segs[len(segs)-1], args...), nil
}
