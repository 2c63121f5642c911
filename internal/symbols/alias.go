package symbols

import "fmt"

// AccessKind classifies what a leading name in a path resolves to.
type AccessKind uint8

const (
	AccessInvalid AccessKind = iota
	AccessAddress            // std -> 0x1
	AccessModule             // vector -> 0x1::vector
	AccessMember             // Option -> 0x1::option::Option
	AccessTypeParam          // T
)

func (k AccessKind) String() string {
	switch k {
	case AccessAddress:
		return "address"
	case AccessModule:
		return "module"
	case AccessMember:
		return "member"
	case AccessTypeParam:
		return "type parameter"
	default:
		return "invalid"
	}
}

// LeadingAccessEntry is one value of the alias table consulted for the first
// segment of a path (a.k.a. leading access). Only the fields matching Kind
// are meaningful.
type LeadingAccessEntry struct {
	Kind    AccessKind
	Address Address
	Module  ModuleIdent
	Member  Symbol
}

func AddressAlias(a Address) LeadingAccessEntry {
	return LeadingAccessEntry{Kind: AccessAddress, Address: a}
}

func ModuleAlias(m ModuleIdent) LeadingAccessEntry {
	return LeadingAccessEntry{Kind: AccessModule, Module: m}
}

func MemberAlias(m ModuleIdent, member Symbol) LeadingAccessEntry {
	return LeadingAccessEntry{Kind: AccessMember, Module: m, Member: member}
}

func TypeParamAlias() LeadingAccessEntry {
	return LeadingAccessEntry{Kind: AccessTypeParam}
}

func (e LeadingAccessEntry) String() string {
	switch e.Kind {
	case AccessAddress:
		return e.Address.String()
	case AccessModule:
		return e.Module.String()
	case AccessMember:
		return fmt.Sprintf("%s::%s", e.Module, e.Member)
	case AccessTypeParam:
		return "type parameter"
	default:
		return "<invalid>"
	}
}

// MemberEntry is one value of a member-only alias table (names usable after
// a module has been fixed, e.g. in `use` member lists). It can never be an
// address or a module.
type MemberEntry struct {
	Kind   AccessKind // AccessMember or AccessTypeParam
	Module ModuleIdent
	Member Symbol
}

func MemberOnlyAlias(m ModuleIdent, member Symbol) MemberEntry {
	return MemberEntry{Kind: AccessMember, Module: m, Member: member}
}

func MemberTypeParam() MemberEntry {
	return MemberEntry{Kind: AccessTypeParam}
}

// LeadingAccessTable maps alias names to what they resolve to in a scope.
type LeadingAccessTable map[Symbol]LeadingAccessEntry

// MemberTable maps member alias names in a scope.
type MemberTable map[Symbol]MemberEntry
