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

package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/felt"
)

// Address identifies an account or a contract.
type Address struct {
	felt.Felt
}

// NullAddress is the zero address, used as deployer of account deployments
// and as caller of constructors.
var NullAddress = Address{}

func NewAddress(f felt.Felt) Address {
	return Address{f}
}

func AddressFromUint64(v uint64) Address {
	return Address{felt.FromUint64(v)}
}

func (a Address) String() string {
	return a.Felt.String()
}

// ClassHash is the digest of a declared contract class.
type ClassHash [32]byte

func ClassHashFromFelt(f felt.Felt) ClassHash {
	return ClassHash(f.Bytes())
}

func ClassHashFromUint64(v uint64) ClassHash {
	return ClassHashFromFelt(felt.FromUint64(v))
}

func (h ClassHash) Felt() felt.Felt {
	return felt.FromBytes(h[:])
}

func (h ClassHash) IsZero() bool {
	return h == ClassHash{}
}

func (h ClassHash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h ClassHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Felt())
}

func (h *ClassHash) UnmarshalJSON(data []byte) error {
	var f felt.Felt
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid class hash; %w", err)
	}
	*h = ClassHashFromFelt(f)
	return nil
}

// CompiledClassHash is the digest of the compiled form of a class.
type CompiledClassHash = ClassHash

// StorageEntry addresses one storage cell of one contract.
type StorageEntry struct {
	Address Address
	Key     felt.Felt
}

func (e StorageEntry) String() string {
	return fmt.Sprintf("%v[%v]", e.Address, e.Key)
}

// CompareAddresses orders addresses by their integer value.
func CompareAddresses(a, b Address) int {
	return a.Cmp(b.Felt)
}

// CompareStorageEntries orders entries by address, then by key.
func CompareStorageEntries(a, b StorageEntry) int {
	if c := CompareAddresses(a.Address, b.Address); c != 0 {
		return c
	}
	return a.Key.Cmp(b.Key)
}
