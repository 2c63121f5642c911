package ide

import (
	"cmp"
	"maps"
	"slices"

	"moveide/internal/symbols"
)

// AddressAliasEntry is `name -> 0x1`.
type AddressAliasEntry struct {
	Name    symbols.Symbol
	Address symbols.Address
}

// ModuleAliasEntry is `name -> 0x1::vector`.
type ModuleAliasEntry struct {
	Name   symbols.Symbol
	Module symbols.ModuleIdent
}

// MemberAliasEntry is `name -> 0x1::option::Option`.
type MemberAliasEntry struct {
	Name   symbols.Symbol
	Module symbols.ModuleIdent
	Member symbols.Symbol
}

// AliasAutocompleteInfo is a snapshot of the aliases in force at a path
// position, split into four sets. Sets deduplicate identical tuples only;
// the same name may show up in more than one category. Build one with
// NewAliasAutocompleteInfo; the zero value is a read-only empty snapshot.
type AliasAutocompleteInfo struct {
	addresses  map[AddressAliasEntry]struct{}
	modules    map[ModuleAliasEntry]struct{}
	members    map[MemberAliasEntry]struct{}
	typeParams map[symbols.Symbol]struct{}
}

func NewAliasAutocompleteInfo() *AliasAutocompleteInfo {
	return &AliasAutocompleteInfo{
		addresses:  make(map[AddressAliasEntry]struct{}),
		modules:    make(map[ModuleAliasEntry]struct{}),
		members:    make(map[MemberAliasEntry]struct{}),
		typeParams: make(map[symbols.Symbol]struct{}),
	}
}

func (a *AliasAutocompleteInfo) AddAddress(name symbols.Symbol, addr symbols.Address) {
	a.addresses[AddressAliasEntry{Name: name, Address: addr}] = struct{}{}
}

func (a *AliasAutocompleteInfo) AddModule(name symbols.Symbol, m symbols.ModuleIdent) {
	a.modules[ModuleAliasEntry{Name: name, Module: m}] = struct{}{}
}

func (a *AliasAutocompleteInfo) AddMember(name symbols.Symbol, m symbols.ModuleIdent, member symbols.Symbol) {
	a.members[MemberAliasEntry{Name: name, Module: m, Member: member}] = struct{}{}
}

func (a *AliasAutocompleteInfo) AddTypeParam(name symbols.Symbol) {
	a.typeParams[name] = struct{}{}
}

// Len is the total number of entries over all four sets.
func (a *AliasAutocompleteInfo) Len() int {
	return len(a.addresses) + len(a.modules) + len(a.members) + len(a.typeParams)
}

// Addresses returns the address aliases sorted by (name, address).
func (a *AliasAutocompleteInfo) Addresses() []AddressAliasEntry {
	return slices.SortedFunc(maps.Keys(a.addresses), func(x, y AddressAliasEntry) int {
		return cmp.Or(x.Name.Compare(y.Name), x.Address.Compare(y.Address))
	})
}

// Modules returns the module aliases sorted by (name, module).
func (a *AliasAutocompleteInfo) Modules() []ModuleAliasEntry {
	return slices.SortedFunc(maps.Keys(a.modules), func(x, y ModuleAliasEntry) int {
		return cmp.Or(x.Name.Compare(y.Name), x.Module.Compare(y.Module))
	})
}

// Members returns the member aliases sorted by (name, module, member).
func (a *AliasAutocompleteInfo) Members() []MemberAliasEntry {
	return slices.SortedFunc(maps.Keys(a.members), func(x, y MemberAliasEntry) int {
		return cmp.Or(x.Name.Compare(y.Name), x.Module.Compare(y.Module), x.Member.Compare(y.Member))
	})
}

func (a *AliasAutocompleteInfo) TypeParams() []symbols.Symbol {
	return slices.SortedFunc(maps.Keys(a.typeParams), symbols.Symbol.Compare)
}

// AliasesFromLeadingAccess projects the table consulted for the first
// segment of a path. Every kind of entry can occur there.
func AliasesFromLeadingAccess(table symbols.LeadingAccessTable) *AliasAutocompleteInfo {
	info := NewAliasAutocompleteInfo()
	for name, entry := range table {
		switch entry.Kind {
		case symbols.AccessAddress:
			info.AddAddress(name, entry.Address)
		case symbols.AccessModule:
			info.AddModule(name, entry.Module)
		case symbols.AccessMember:
			info.AddMember(name, entry.Module, entry.Member)
		case symbols.AccessTypeParam:
			info.AddTypeParam(name)
		default:
			panic("ide: leading access entry " + name.String() + " has invalid kind")
		}
	}
	return info
}

// AliasesFromMembers projects a member-only table. Its snapshot never has
// address or module aliases.
func AliasesFromMembers(table symbols.MemberTable) *AliasAutocompleteInfo {
	info := NewAliasAutocompleteInfo()
	for name, entry := range table {
		switch entry.Kind {
		case symbols.AccessMember:
			info.AddMember(name, entry.Module, entry.Member)
		case symbols.AccessTypeParam:
			info.AddTypeParam(name)
		default:
			panic("ide: member entry " + name.String() + " has kind " + entry.Kind.String())
		}
	}
	return info
}
