package symbols

import (
	"fmt"
	"strings"
)

// ModuleAddress is the address part of a module identifier. It is either a
// named address (std, sui), a numerical one (0x2), or both when a named
// address has been assigned a value.
type ModuleAddress struct {
	Name     Symbol
	Value    Address
	HasValue bool
}

// NamedAddress builds an address known only by name.
func NamedAddress(name string) ModuleAddress {
	return ModuleAddress{Name: New(name)}
}

// NumericAddress builds an address from its value.
func NumericAddress(a Address) ModuleAddress {
	return ModuleAddress{Value: a, HasValue: true}
}

// IsZero reports whether no address was given at all.
func (a ModuleAddress) IsZero() bool {
	return a.Name.IsEmpty() && !a.HasValue
}

// String prefers the name over the value, as source code does.
func (a ModuleAddress) String() string {
	switch {
	case !a.Name.IsEmpty():
		return a.Name.String()
	case a.HasValue:
		return a.Value.String()
	default:
		return ""
	}
}

// ModuleIdent identifies a module: <address>::<module>.
type ModuleIdent struct {
	Address ModuleAddress
	Module  Symbol
}

// ParseModuleIdent accepts "0x2::coin", "std::vector" or a bare "M".
func ParseModuleIdent(s string) (ModuleIdent, error) {
	s = strings.TrimSpace(s)
	addr, module, found := strings.Cut(s, "::")
	if !found {
		if !isIdent(s) {
			return ModuleIdent{}, fmt.Errorf("invalid module identifier %q", s)
		}
		return ModuleIdent{Module: New(s)}, nil
	}
	if !isIdent(module) {
		return ModuleIdent{}, fmt.Errorf("invalid module name in %q", s)
	}
	if strings.HasPrefix(addr, "0x") || (addr != "" && addr[0] >= '0' && addr[0] <= '9') {
		value, err := ParseAddress(addr)
		if err != nil {
			return ModuleIdent{}, fmt.Errorf("module identifier %q: %w", s, err)
		}
		return ModuleIdent{Address: NumericAddress(value), Module: New(module)}, nil
	}
	if !isIdent(addr) {
		return ModuleIdent{}, fmt.Errorf("invalid address in %q", s)
	}
	return ModuleIdent{Address: NamedAddress(addr), Module: New(module)}, nil
}

// MustParseModuleIdent panics on malformed input; meant for tests and tables.
func MustParseModuleIdent(s string) ModuleIdent {
	m, err := ParseModuleIdent(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m ModuleIdent) String() string {
	if m.Address.IsZero() {
		return m.Module.String()
	}
	return m.Address.String() + "::" + m.Module.String()
}

// Compare orders module identifiers by their rendered address, then name.
func (m ModuleIdent) Compare(other ModuleIdent) int {
	if c := strings.Compare(m.Address.String(), other.Address.String()); c != 0 {
		return c
	}
	if m.Address.HasValue != other.Address.HasValue {
		if m.Address.HasValue {
			return 1
		}
		return -1
	}
	if c := m.Address.Value.Compare(other.Address.Value); c != 0 {
		return c
	}
	return m.Module.Compare(other.Module)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
