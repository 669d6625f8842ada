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

package state

import (
	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
)

// InMemoryStateReader is a StateReader backed by plain maps. It is used to
// set up genesis states for tests and scenarios.
type InMemoryStateReader struct {
	AddressToClassHash           map[types.Address]types.ClassHash
	AddressToNonce               map[types.Address]felt.Felt
	AddressToStorage             map[types.StorageEntry]felt.Felt
	ClassHashToCompiledClass     map[types.ClassHash]contractclass.CompiledClass
	ClassHashToCompiledClassHash map[types.ClassHash]types.CompiledClassHash
}

func NewInMemoryStateReader() *InMemoryStateReader {
	return &InMemoryStateReader{
		AddressToClassHash:           map[types.Address]types.ClassHash{},
		AddressToNonce:               map[types.Address]felt.Felt{},
		AddressToStorage:             map[types.StorageEntry]felt.Felt{},
		ClassHashToCompiledClass:     map[types.ClassHash]contractclass.CompiledClass{},
		ClassHashToCompiledClassHash: map[types.ClassHash]types.CompiledClassHash{},
	}
}

func (r *InMemoryStateReader) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, error) {
	class, found := r.ClassHashToCompiledClass[hash]
	if !found {
		return nil, &MissingClassError{ClassHash: hash}
	}
	return class, nil
}

func (r *InMemoryStateReader) GetClassHashAt(address types.Address) (types.ClassHash, error) {
	return r.AddressToClassHash[address], nil
}

func (r *InMemoryStateReader) GetNonceAt(address types.Address) (felt.Felt, error) {
	return r.AddressToNonce[address], nil
}

func (r *InMemoryStateReader) GetStorageAt(entry types.StorageEntry) (felt.Felt, error) {
	return r.AddressToStorage[entry], nil
}

func (r *InMemoryStateReader) GetCompiledClassHash(hash types.ClassHash) (types.CompiledClassHash, error) {
	return r.ClassHashToCompiledClassHash[hash], nil
}
