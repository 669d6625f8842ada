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

package transaction

import (
	"testing"

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/Fantom-foundation/Starkrun/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	erc20ClassHash         = types.ClassHashFromUint64(0xe20)
	accountClassHash       = types.ClassHashFromUint64(0xacc)
	legacyAccountClassHash = types.ClassHashFromUint64(0x1e9)
	maliciousClassHash     = types.ClassHashFromUint64(0xbad)

	feeToken = txcontext.DefaultFeeTokenAddress
)

// testEnv is a genesis state holding the fee token and all account classes.
type testEnv struct {
	state        *state.CachedState
	blockContext *txcontext.BlockContext
	invoker      *vm.Invoker
}

func newTestEnv(t *testing.T) *testEnv {
	reader := state.NewInMemoryStateReader()
	reader.ClassHashToCompiledClass[erc20ClassHash] = vm.Erc20Class()
	reader.ClassHashToCompiledClass[accountClassHash] = vm.AccountClass()
	reader.ClassHashToCompiledClass[legacyAccountClassHash] = vm.AccountWithoutValidationClass()
	reader.ClassHashToCompiledClass[maliciousClassHash] = vm.MaliciousAccountClass()
	reader.AddressToClassHash[feeToken] = erc20ClassHash

	invoker, err := vm.NewInvoker(vm.NewDefaultRegistry(), vm.Config{})
	require.NoError(t, err)
	return &testEnv{
		state:        state.NewCachedState(reader, state.NewPermanentContractClassCache()),
		blockContext: txcontext.DefaultBlockContext(txcontext.TestNet2ChainID),
		invoker:      invoker,
	}
}

func (e *testEnv) setGasPrice(price uint64) {
	e.blockContext.BlockInfo.GasPrice.EthL1GasPrice = *uint256.NewInt(price)
}

func (e *testEnv) fund(owner types.Address, amount uint64) {
	low, _ := starkhash.Erc20BalanceKeys(owner)
	e.state.SetStorageAt(types.StorageEntry{Address: feeToken, Key: low}, felt.FromUint64(amount))
}

func (e *testEnv) balance(t *testing.T, owner types.Address) uint64 {
	low, _ := starkhash.Erc20BalanceKeys(owner)
	value, err := e.state.GetStorageAt(types.StorageEntry{Address: feeToken, Key: low})
	require.NoError(t, err)
	return value.Uint64()
}

func (e *testEnv) nonce(t *testing.T, address types.Address) uint64 {
	nonce, err := e.state.GetNonceAt(address)
	require.NoError(t, err)
	return nonce.Uint64()
}

func (e *testEnv) classHashAt(t *testing.T, address types.Address) types.ClassHash {
	hash, err := e.state.GetClassHashAt(address)
	require.NoError(t, err)
	return hash
}

func newTestDeployAccount(t *testing.T, classHash types.ClassHash, maxFee uint64, nonce uint64, calldata ...uint64) *DeployAccount {
	tx, err := NewDeployAccount(
		classHash,
		txcontext.NewDeprecatedAccountTxFields(maxFee),
		felt.One,
		felt.FromUint64(nonce),
		felt.FromUint64s(calldata...),
		felt.FromUint64s(calldata...),
		felt.Zero,
		txcontext.TestNet2ChainID,
	)
	require.NoError(t, err)
	return tx
}
