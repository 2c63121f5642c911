package symbols

import (
	"bytes"
	"cmp"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// AddressLength is the width of a numerical account address in bytes.
const AddressLength = 32

// AddressFormat remembers how an address literal was written so that it is
// displayed back in the same base.
type AddressFormat uint8

const (
	AddressHex AddressFormat = iota
	AddressDecimal
)

// Address is a numerical account address, e.g. 0x1 or 0x2.
type Address struct {
	Bytes  [AddressLength]byte
	Format AddressFormat
}

// ParseAddress parses "0x..." (hex) or a decimal literal.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, fmt.Errorf("empty address literal")
	}
	n := new(big.Int)
	format := AddressDecimal
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		format = AddressHex
		if rest == "" {
			return Address{}, fmt.Errorf("invalid address literal %q", s)
		}
		if _, ok := n.SetString(rest, 16); !ok {
			return Address{}, fmt.Errorf("invalid hex address literal %q", s)
		}
	} else if _, ok := n.SetString(s, 10); !ok {
		return Address{}, fmt.Errorf("invalid address literal %q", s)
	}
	if n.Sign() < 0 || n.BitLen() > AddressLength*8 {
		return Address{}, fmt.Errorf("address literal %q out of range", s)
	}
	var addr Address
	n.FillBytes(addr.Bytes[:])
	addr.Format = format
	return addr, nil
}

// MustParseAddress is ParseAddress for literals known to be valid.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String renders the address in its original base without leading zeros.
func (a Address) String() string {
	if a.Format == AddressDecimal {
		return new(big.Int).SetBytes(a.Bytes[:]).String()
	}
	short := strings.TrimLeft(hex.EncodeToString(a.Bytes[:]), "0")
	if short == "" {
		short = "0"
	}
	return "0x" + short
}

// Compare orders addresses by value, then by format.
func (a Address) Compare(other Address) int {
	if c := bytes.Compare(a.Bytes[:], other.Bytes[:]); c != 0 {
		return c
	}
	return cmp.Compare(a.Format, other.Format)
}
