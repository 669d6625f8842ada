// Copyright 2024 Fantom Foundation
// This file is part of Starkrun, a Starknet transaction execution tool.
//
// Starkrun is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Starkrun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Starkrun. If not, see <http://www.gnu.org/licenses/>.

package felt

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Felt is an element of the Starknet prime field. The zero value is the
// field element 0. Felt is comparable and may be used as a map key.
type Felt struct {
	val fp.Element
}

var (
	Zero = Felt{}
	One  = FromUint64(1)
)

// Bits is the bit length of the field modulus.
const Bits = fp.Bits

// FromUint64 returns the field element of the given value.
func FromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FromBigInt reduces the given integer modulo the field prime.
func FromBigInt(v *big.Int) Felt {
	var f Felt
	f.val.SetBigInt(v)
	return f
}

// FromBytes interprets b as a big-endian integer reduced modulo the prime.
func FromBytes(b []byte) Felt {
	var f Felt
	f.val.SetBytes(b)
	return f
}

// FromUint256 reduces the given integer modulo the field prime.
func FromUint256(v *uint256.Int) Felt {
	b := v.Bytes32()
	return FromBytes(b[:])
}

// FromElement wraps a raw field element.
func FromElement(e fp.Element) Felt {
	return Felt{val: e}
}

// FromShortString encodes an ASCII string of at most 31 characters as a
// field element, the way chain ids and hash prefixes are encoded.
func FromShortString(s string) (Felt, error) {
	if len(s) > 31 {
		return Zero, fmt.Errorf("short string %q exceeds 31 characters", s)
	}
	return FromBytes([]byte(s)), nil
}

// MustFromShortString is like FromShortString but panics on malformed input.
// Only use it for package-level constants.
func MustFromShortString(s string) Felt {
	f, err := FromShortString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FromString parses a 0x-prefixed hex or a decimal string.
func FromString(s string) (Felt, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := hexutil.DecodeBig(normalizeHex(s))
		if err != nil {
			return Zero, fmt.Errorf("cannot parse felt %q; %w", s, err)
		}
		if v.BitLen() > 256 || v.Cmp(fp.Modulus()) >= 0 {
			return Zero, fmt.Errorf("felt %q exceeds field modulus", s)
		}
		return FromBigInt(v), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return Zero, fmt.Errorf("cannot parse felt %q", s)
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return Zero, fmt.Errorf("felt %q exceeds field modulus", s)
	}
	return FromBigInt(v), nil
}

// MustFromString is like FromString but panics on malformed input.
func MustFromString(s string) Felt {
	f, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// hexutil rejects leading zeros, felts written by hand often carry them.
func normalizeHex(s string) string {
	digits := strings.TrimLeft(s[2:], "0")
	if digits == "" {
		digits = "0"
	}
	return "0x" + digits
}

func (f Felt) Element() fp.Element {
	return f.val
}

func (f Felt) Add(o Felt) Felt {
	var r Felt
	r.val.Add(&f.val, &o.val)
	return r
}

func (f Felt) Sub(o Felt) Felt {
	var r Felt
	r.val.Sub(&f.val, &o.val)
	return r
}

// Cmp compares the canonical integer representations of f and o.
func (f Felt) Cmp(o Felt) int {
	return f.val.Cmp(&o.val)
}

func (f Felt) Equal(o Felt) bool {
	return f.val.Equal(&o.val)
}

func (f Felt) IsZero() bool {
	return f.val.IsZero()
}

// IsUint64 reports whether f fits into a uint64.
func (f Felt) IsUint64() bool {
	return f.val.IsUint64()
}

// Uint64 returns the low 64 bits of f.
func (f Felt) Uint64() uint64 {
	return f.val.Uint64()
}

// Uint256 returns the canonical integer value of f.
func (f Felt) Uint256() *uint256.Int {
	b := f.Bytes()
	return new(uint256.Int).SetBytes(b[:])
}

func (f Felt) BigInt() *big.Int {
	return f.val.BigInt(new(big.Int))
}

// Bytes returns the big-endian 32-byte encoding of f.
func (f Felt) Bytes() [32]byte {
	return f.val.Bytes()
}

// String returns the 0x-prefixed hex representation of f.
func (f Felt) String() string {
	return "0x" + f.val.Text(16)
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("felt must be a string or a number; %w", err)
		}
		s = n.String()
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FromUint64s converts a list of integers into felts.
func FromUint64s(values ...uint64) []Felt {
	res := make([]Felt, len(values))
	for i, v := range values {
		res[i] = FromUint64(v)
	}
	return res
}

// Equals reports whether both slices hold the same felts in the same order.
func Equals(a, b []Felt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
