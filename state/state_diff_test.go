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
	"testing"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDiffFromCachedState_OnlyKeepsActualChanges(t *testing.T) {
	reader := NewInMemoryStateReader()
	same := types.StorageEntry{Address: addr1, Key: key1}
	reader.AddressToStorage[same] = felt.FromUint64(4)
	s := NewCachedState(reader, nil)

	value, _ := s.GetStorageAt(same)
	s.SetStorageAt(same, value)
	s.SetStorageAt(types.StorageEntry{Address: addr2, Key: key1}, felt.FromUint64(8))
	require.NoError(t, s.IncrementNonce(addr2))
	require.NoError(t, s.SetContractClass(types.ClassHashFromUint64(3), &contractclass.CasmClass{}))

	diff, err := StateDiffFromCachedState(s)
	require.NoError(t, err)
	assert.Equal(t, map[types.Address]map[felt.Felt]felt.Felt{addr2: {key1: felt.FromUint64(8)}}, diff.StorageUpdates)
	assert.Equal(t, map[types.Address]felt.Felt{addr2: felt.One}, diff.AddressToNonce)
	assert.Empty(t, diff.AddressToClassHash)
	assert.Contains(t, diff.DeclaredClasses, types.ClassHashFromUint64(3))
}

func TestStateDiff_OrderedIsSortedAndStable(t *testing.T) {
	diff := NewStateDiff()
	diff.AddressToNonce[addr2] = felt.One
	diff.AddressToNonce[addr1] = felt.One
	diff.AddressToClassHash[addr2] = types.ClassHashFromUint64(7)
	diff.setStorage(types.StorageEntry{Address: addr2, Key: felt.FromUint64(2)}, felt.One)
	diff.setStorage(types.StorageEntry{Address: addr1, Key: felt.FromUint64(9)}, felt.One)
	diff.setStorage(types.StorageEntry{Address: addr1, Key: felt.FromUint64(3)}, felt.One)

	want := []StateChange{
		{Kind: ClassHashChange, Address: addr2, Value: felt.FromUint64(7)},
		{Kind: NonceChange, Address: addr1, Value: felt.One},
		{Kind: NonceChange, Address: addr2, Value: felt.One},
		{Kind: StorageChange, Address: addr1, Key: felt.FromUint64(3), Value: felt.One},
		{Kind: StorageChange, Address: addr1, Key: felt.FromUint64(9), Value: felt.One},
		{Kind: StorageChange, Address: addr2, Key: felt.FromUint64(2), Value: felt.One},
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, diff.Ordered())
	}
}

func TestStateDiff_MergePrefersLaterChanges(t *testing.T) {
	first := NewStateDiff()
	first.AddressToNonce[addr1] = felt.One
	first.setStorage(types.StorageEntry{Address: addr1, Key: key1}, felt.One)

	second := NewStateDiff()
	second.AddressToNonce[addr1] = felt.FromUint64(2)
	second.setStorage(types.StorageEntry{Address: addr1, Key: felt.FromUint64(11)}, felt.One)

	first.Merge(second)
	assert.Equal(t, felt.FromUint64(2), first.AddressToNonce[addr1])
	assert.Len(t, first.StorageUpdates[addr1], 2)
	assert.False(t, first.IsEmpty())
}
