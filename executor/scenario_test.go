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

package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/transaction"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/Fantom-foundation/Starkrun/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testScenario = "testdata/scenario.json"

func TestScenario_LoadAndGenesis(t *testing.T) {
	scenario, err := LoadScenario(testScenario)
	require.NoError(t, err)
	require.Len(t, scenario.Blocks, 2)

	diff, err := scenario.GenesisDiff(txcontext.DefaultFeeTokenAddress)
	require.NoError(t, err)
	assert.Len(t, diff.DeclaredClasses, 3)
	assert.Equal(t, types.ClassHashFromUint64(0xe20), diff.AddressToClassHash[txcontext.DefaultFeeTokenAddress])

	low, _ := starkhash.Erc20BalanceKeys(types.AddressFromUint64(0x100))
	assert.Equal(t, felt.FromUint64(1_000_000), diff.StorageUpdates[txcontext.DefaultFeeTokenAddress][low])
}

func TestScenario_LoadClassFromPath(t *testing.T) {
	dir := t.TempDir()
	data, err := contractclass.Marshal(vm.Erc20Class())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token.json"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.json"), []byte(`{"classes":[{"class_hash":"0x1","path":"token.json"}]}`), 0o644))

	scenario, err := LoadScenario(filepath.Join(dir, "scenario.json"))
	require.NoError(t, err)
	diff, err := scenario.GenesisDiff(txcontext.DefaultFeeTokenAddress)
	require.NoError(t, err)
	assert.Equal(t, vm.Erc20ProgramName, diff.DeclaredClasses[types.ClassHashFromUint64(1)].ProgramName())
}

func TestScenario_GenesisErrors(t *testing.T) {
	tests := map[string]*Scenario{
		"unknown builtin":  {Classes: []ScenarioClass{{ClassHash: types.ClassHashFromUint64(1), Builtin: "nope"}}},
		"no source":        {Classes: []ScenarioClass{{ClassHash: types.ClassHashFromUint64(1)}}},
		"two sources":      {Classes: []ScenarioClass{{ClassHash: types.ClassHashFromUint64(1), Builtin: "erc20", Path: "x.json"}}},
		"undeclared class": {Genesis: []GenesisContract{{Address: types.AddressFromUint64(1), ClassHash: types.ClassHashFromUint64(1)}}},
	}
	for name, scenario := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.GenesisDiff(txcontext.DefaultFeeTokenAddress)
			assert.Error(t, err)
		})
	}
}

func TestScenario_LoadRejectsMalformedFiles(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"blocks": [`), 0o644))
	_, err = LoadScenario(path)
	assert.Error(t, err)
}

func TestScenarioTransaction_Build(t *testing.T) {
	deploy := ScenarioTransaction{
		Type:                DeployAccountTxType,
		Version:             felt.One,
		ClassHash:           types.ClassHashFromUint64(0xacc),
		ConstructorCalldata: felt.FromUint64s(10),
	}
	tx, err := deploy.Build(txcontext.TestNetChainID)
	require.NoError(t, err)
	require.IsType(t, &transaction.DeployAccount{}, tx)
	assert.Equal(t, txcontext.DeployAccount, tx.Type())

	hash := felt.FromUint64(0x1234)
	deploy.Hash = &hash
	tx, err = deploy.Build(txcontext.TestNetChainID)
	require.NoError(t, err)
	assert.Equal(t, hash, tx.Hash())

	invoke := ScenarioTransaction{
		Type:            InvokeFunctionTxType,
		Version:         felt.One,
		ContractAddress: types.AddressFromUint64(0x100),
		Call:            &ScenarioCall{To: types.AddressFromUint64(0x200), EntryPoint: "transfer", Calldata: felt.FromUint64s(1, 2, 0)},
	}
	tx, err = invoke.Build(txcontext.TestNetChainID)
	require.NoError(t, err)
	require.IsType(t, &transaction.InvokeFunction{}, tx)
	want := []felt.Felt{felt.FromUint64(0x200), starkhash.TransferSelector, felt.FromUint64(3), felt.FromUint64(1), felt.FromUint64(2), felt.Zero}
	assert.Equal(t, want, tx.(*transaction.InvokeFunction).Calldata())

	legacy := ScenarioTransaction{Type: InvokeFunctionTxType, ContractAddress: types.AddressFromUint64(0x100), EntryPoint: "balanceOf"}
	tx, err = legacy.Build(txcontext.TestNetChainID)
	require.NoError(t, err)
	assert.Equal(t, starkhash.BalanceOfSelector, tx.(*transaction.InvokeFunction).EntryPointSelector())

	_, err = (&ScenarioTransaction{Type: "DECLARE"}).Build(txcontext.TestNetChainID)
	assert.Error(t, err)
}

func TestScenarioBlock_UpdateBlockInfo(t *testing.T) {
	sequencer := types.AddressFromUint64(0x5e)
	block := ScenarioBlock{Number: 7, Timestamp: 99, GasPrice: 3, StrkGasPrice: 4, Sequencer: &sequencer}
	info := txcontext.DefaultBlockContext(txcontext.TestNetChainID).BlockInfo

	block.UpdateBlockInfo(&info)
	assert.Equal(t, uint64(7), info.BlockNumber)
	assert.Equal(t, uint64(99), info.BlockTimestamp)
	assert.Equal(t, uint64(3), info.GasPrice.EthL1GasPrice.Uint64())
	assert.Equal(t, uint64(4), info.GasPrice.StrkL1GasPrice.Uint64())
	assert.Equal(t, sequencer, info.SequencerAddress)
}

func TestScenarioProvider_ServesBlockRange(t *testing.T) {
	scenario, err := LoadScenario(testScenario)
	require.NoError(t, err)
	provider := NewScenarioProvider(scenario, txcontext.TestNetChainID)
	defer provider.Close()

	var got []TransactionInfo
	err = provider.Run(0, 100, func(info TransactionInfo) error {
		got = append(got, info)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].Block)
	assert.Equal(t, 1, got[2].Block)
	assert.Equal(t, 1, got[2].Transaction)
	assert.Equal(t, txcontext.InvokeFunction, got[2].Data.Type())

	got = nil
	require.NoError(t, provider.Run(1, 2, func(info TransactionInfo) error {
		got = append(got, info)
		return nil
	}))
	assert.Len(t, got, 2)
}

func TestScenarioProvider_ConsumerErrorStopsIteration(t *testing.T) {
	scenario, err := LoadScenario(testScenario)
	require.NoError(t, err)
	calls := 0
	err = NewScenarioProvider(scenario, txcontext.TestNetChainID).Run(0, 2, func(TransactionInfo) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestScenarioProvider_FeedsTheExecutor(t *testing.T) {
	ctrl := gomock.NewController(t)
	processor := NewMockProcessor(ctrl)
	scenario, err := LoadScenario(testScenario)
	require.NoError(t, err)

	gomock.InOrder(
		processor.EXPECT().Process(AtTransaction(0, 0), gomock.Any()),
		processor.EXPECT().Process(AtTransaction(1, 0), gomock.Any()),
		processor.EXPECT().Process(AtTransaction(1, 1), gomock.Any()),
	)

	err = NewExecutor(NewScenarioProvider(scenario, txcontext.TestNetChainID)).Run(Params{From: 0, To: len(scenario.Blocks)}, processor, nil)
	assert.NoError(t, err)
}
