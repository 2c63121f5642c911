package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"moveide/internal/symbols"
)

// ValueKind enumerates literal value forms that may appear in patterns.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueAddress           // @0x1
	ValueNum               // 5 (width inferred)
	ValueU8
	ValueU16
	ValueU32
	ValueU64
	ValueU128
	ValueU256
	ValueBool
	ValueBytes // x"0a0b"
)

var numSuffix = map[ValueKind]string{
	ValueU8: "u8", ValueU16: "u16", ValueU32: "u32", ValueU64: "u64", ValueU128: "u128", ValueU256: "u256",
}

var numBits = map[ValueKind]int{
	ValueNum: 256, ValueU8: 8, ValueU16: 16, ValueU32: 32, ValueU64: 64, ValueU128: 128, ValueU256: 256,
}

// Value is a literal constant.
type Value struct {
	Kind    ValueKind
	Num     *big.Int
	Bool    bool
	Address symbols.Address
	Bytes   []byte
}

func NumValue(kind ValueKind, n uint64) Value {
	return Value{Kind: kind, Num: new(big.Int).SetUint64(n)}
}

func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

func AddressValue(a symbols.Address) Value { return Value{Kind: ValueAddress, Address: a} }

func BytesValue(b []byte) Value { return Value{Kind: ValueBytes, Bytes: b} }

func (v Value) String() string {
	switch v.Kind {
	case ValueAddress:
		return "@" + v.Address.String()
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueBytes:
		return `x"` + hex.EncodeToString(v.Bytes) + `"`
	case ValueNum:
		return v.num()
	default:
		if suffix, ok := numSuffix[v.Kind]; ok {
			return v.num() + suffix
		}
		return "<invalid value>"
	}
}

func (v Value) num() string {
	if v.Num == nil {
		return "0"
	}
	return v.Num.String()
}

// ParseValue reads a literal in source syntax: @0x1, true, 7, 7u8, x"0a", b"text".
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "true" || s == "false":
		return BoolValue(s == "true"), nil
	case strings.HasPrefix(s, "@"):
		a, err := symbols.ParseAddress(s[1:])
		if err != nil {
			return Value{}, err
		}
		return AddressValue(a), nil
	case strings.HasPrefix(s, `x"`) && strings.HasSuffix(s, `"`) && len(s) >= 3:
		b, err := hex.DecodeString(s[2 : len(s)-1])
		if err != nil {
			return Value{}, fmt.Errorf("invalid hex string %s: %w", s, err)
		}
		return BytesValue(b), nil
	case strings.HasPrefix(s, `b"`) && strings.HasSuffix(s, `"`) && len(s) >= 3:
		return BytesValue([]byte(s[2 : len(s)-1])), nil
	}

	kind := ValueNum
	digits := s
	// ни один суффикс не является суффиксом другого, порядок обхода не важен
	for k, suffix := range numSuffix {
		if rest, ok := strings.CutSuffix(s, suffix); ok {
			kind, digits = k, rest
			break
		}
	}
	digits = strings.ReplaceAll(digits, "_", "")
	n := new(big.Int)
	base := 10
	if rest, ok := strings.CutPrefix(digits, "0x"); ok {
		digits, base = rest, 16
	}
	if _, ok := n.SetString(digits, base); !ok || digits == "" {
		return Value{}, fmt.Errorf("invalid literal %q", s)
	}
	if n.Sign() < 0 || n.BitLen() > numBits[kind] {
		return Value{}, fmt.Errorf("literal %q does not fit its type", s)
	}
	return Value{Kind: kind, Num: n}, nil
}

// Expr is the display form of a typed expression fragment, e.g. the
// receiver of a dot call.
type Expr struct {
	Text string
	Type Type
}

func (e Expr) String() string { return e.Text }
