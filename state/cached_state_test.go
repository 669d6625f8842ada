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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	addr1 = types.AddressFromUint64(1)
	addr2 = types.AddressFromUint64(2)
	key1  = felt.FromUint64(10)
)

func TestCachedState_ReadsFromParentOnlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockStateReader(ctrl)
	entry := types.StorageEntry{Address: addr1, Key: key1}

	reader.EXPECT().GetStorageAt(entry).Return(felt.FromUint64(7), nil)
	reader.EXPECT().GetNonceAt(addr1).Return(felt.FromUint64(3), nil)

	s := NewCachedState(reader, nil)
	for i := 0; i < 3; i++ {
		value, err := s.GetStorageAt(entry)
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64(7), value)
		nonce, err := s.GetNonceAt(addr1)
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64(3), nonce)
	}
}

func TestCachedState_ParentErrorsArePropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockStateReader(ctrl)
	injected := errors.New("injected")

	reader.EXPECT().GetClassHashAt(addr1).Return(types.ClassHash{}, injected)

	s := NewCachedState(reader, nil)
	if err := s.DeployContract(addr1, types.ClassHashFromUint64(1)); !errors.Is(err, injected) {
		t.Errorf("unexpected error, wanted %v, got %v", injected, err)
	}
}

func TestCachedState_ClassesAreCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := NewMockStateReader(ctrl)
	hash := types.ClassHashFromUint64(5)
	class := &contractclass.CasmClass{Program: "p"}

	reader.EXPECT().GetContractClass(hash).Return(class, nil)

	classes := NewPermanentContractClassCache()
	first := NewCachedState(reader, classes)
	got, err := first.GetContractClass(hash)
	require.NoError(t, err)
	assert.Same(t, class, got)

	// a second state sharing the cache does not hit the reader again
	second := NewCachedState(reader, classes)
	got, err = second.GetContractClass(hash)
	require.NoError(t, err)
	assert.Same(t, class, got)
}

func TestCachedState_MissingClass(t *testing.T) {
	s := NewCachedState(NewInMemoryStateReader(), nil)
	_, err := s.GetContractClass(types.ClassHashFromUint64(1))
	var missing *MissingClassError
	require.ErrorAs(t, err, &missing)
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.Equal(t, types.ClassHashFromUint64(1), missing.ClassHash)
}

func TestCachedState_DeployContractTwiceFails(t *testing.T) {
	s := NewCachedState(NewInMemoryStateReader(), nil)
	hash := types.ClassHashFromUint64(1)

	require.NoError(t, s.DeployContract(addr1, hash))
	err := s.DeployContract(addr1, types.ClassHashFromUint64(2))

	var unavailable *AddressUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, ErrContractAddressUnavailable)
	assert.Equal(t, hash, unavailable.Deployed)

	got, err := s.GetClassHashAt(addr1)
	require.NoError(t, err)
	assert.Equal(t, hash, got)
}

func TestCachedState_DeployToZeroAddressFails(t *testing.T) {
	s := NewCachedState(NewInMemoryStateReader(), nil)
	err := s.DeployContract(types.NullAddress, types.ClassHashFromUint64(1))
	assert.ErrorIs(t, err, ErrContractAddressOutOfRange)
}

func TestCachedState_IncrementNonce(t *testing.T) {
	reader := NewInMemoryStateReader()
	reader.AddressToNonce[addr1] = felt.FromUint64(4)
	s := NewCachedState(reader, nil)

	require.NoError(t, s.IncrementNonce(addr1))
	require.NoError(t, s.IncrementNonce(addr2))

	nonce, _ := s.GetNonceAt(addr1)
	assert.Equal(t, felt.FromUint64(5), nonce)
	nonce, _ = s.GetNonceAt(addr2)
	assert.Equal(t, felt.One, nonce)
	assert.Equal(t, felt.FromUint64(4), reader.AddressToNonce[addr1])
}

func TestCachedState_TransactionalWritesAreInvisibleUntilApplied(t *testing.T) {
	parent := NewCachedState(NewInMemoryStateReader(), nil)
	entry := types.StorageEntry{Address: addr1, Key: key1}
	parent.SetStorageAt(entry, felt.FromUint64(1))

	child, err := parent.CreateTransactional()
	require.NoError(t, err)

	value, err := child.GetStorageAt(entry)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(1), value, "child must read through to its parent")

	child.SetStorageAt(entry, felt.FromUint64(2))
	require.NoError(t, child.DeployContract(addr2, types.ClassHashFromUint64(9)))

	value, _ = parent.GetStorageAt(entry)
	assert.Equal(t, felt.FromUint64(1), value)
	hash, _ := parent.GetClassHashAt(addr2)
	assert.True(t, hash.IsZero())

	diff, err := StateDiffFromCachedState(child)
	require.NoError(t, err)
	require.NoError(t, parent.ApplyStateUpdate(diff))

	value, _ = parent.GetStorageAt(entry)
	assert.Equal(t, felt.FromUint64(2), value)
	hash, _ = parent.GetClassHashAt(addr2)
	assert.Equal(t, types.ClassHashFromUint64(9), hash)
}

func TestCachedState_DroppedTransactionalStateLeavesParentUnchanged(t *testing.T) {
	parent := NewCachedState(NewInMemoryStateReader(), nil)
	child, err := parent.CreateTransactional()
	require.NoError(t, err)

	child.SetStorageAt(types.StorageEntry{Address: addr1, Key: key1}, felt.One)
	require.NoError(t, child.IncrementNonce(addr1))

	diff, err := StateDiffFromCachedState(parent)
	require.NoError(t, err)
	assert.True(t, diff.IsEmpty())
}

func TestCachedState_CountActualStateChanges(t *testing.T) {
	reader := NewInMemoryStateReader()
	unchanged := types.StorageEntry{Address: addr2, Key: key1}
	reader.AddressToStorage[unchanged] = felt.FromUint64(3)
	s := NewCachedState(reader, nil)

	// rewriting a value read before is no change
	value, _ := s.GetStorageAt(unchanged)
	s.SetStorageAt(unchanged, value)

	s.SetStorageAt(types.StorageEntry{Address: addr1, Key: key1}, felt.One)
	s.SetStorageAt(types.StorageEntry{Address: addr1, Key: felt.FromUint64(11)}, felt.One)
	require.NoError(t, s.DeployContract(addr2, types.ClassHashFromUint64(1)))
	require.NoError(t, s.SetCompiledClassHash(types.ClassHashFromUint64(1), types.ClassHashFromUint64(2)))

	count, err := s.CountActualStateChanges(nil)
	require.NoError(t, err)
	assert.Equal(t, StateChangesCount{
		NStorageUpdates:           2,
		NClassHashUpdates:         1,
		NCompiledClassHashUpdates: 1,
		NModifiedContracts:        2,
	}, count)
}

func TestCachedState_CountActualStateChangesIncludesPendingFeeTransfer(t *testing.T) {
	feeToken := types.AddressFromUint64(100)
	s := NewCachedState(NewInMemoryStateReader(), nil)
	require.NoError(t, s.DeployContract(addr1, types.ClassHashFromUint64(1)))
	// a write to the fee token itself does not count as modified contract
	s.SetStorageAt(types.StorageEntry{Address: feeToken, Key: key1}, felt.One)

	count, err := s.CountActualStateChanges(&FeeTokenAndSender{FeeToken: feeToken, Sender: addr1})
	require.NoError(t, err)
	assert.Equal(t, StateChangesCount{
		NStorageUpdates:    2,
		NClassHashUpdates:  1,
		NModifiedContracts: 1,
	}, count)
}

func TestCachedState_GetFeeTokenBalance(t *testing.T) {
	ctx := txcontext.DefaultBlockContext(txcontext.SepoliaChainID)
	reader := NewInMemoryStateReader()
	low, high := starkhash.Erc20BalanceKeys(addr1)
	token := ctx.FeeTokenAddress(txcontext.Eth)
	reader.AddressToStorage[types.StorageEntry{Address: token, Key: low}] = felt.FromUint64(50)
	reader.AddressToStorage[types.StorageEntry{Address: token, Key: high}] = felt.FromUint64(1)

	s := NewCachedState(reader, nil)
	gotLow, gotHigh, err := s.GetFeeTokenBalance(ctx, addr1, txcontext.Eth)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(50), gotLow)
	assert.Equal(t, felt.One, gotHigh)

	gotLow, gotHigh, err = s.GetFeeTokenBalance(ctx, addr1, txcontext.Strk)
	require.NoError(t, err)
	assert.True(t, gotLow.IsZero())
	assert.True(t, gotHigh.IsZero())
}
