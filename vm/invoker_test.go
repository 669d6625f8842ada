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

package vm

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	erc20Hash      = types.ClassHashFromUint64(0x10)
	accountHash    = types.ClassHashFromUint64(0x20)
	tokenAddress   = txcontext.DefaultFeeTokenAddress
	accountAddress = types.AddressFromUint64(0x1000)
	otherAddress   = types.AddressFromUint64(0x2000)
	publicKey      = felt.FromUint64(0xbeef)
)

func newTestState(balance uint64) *state.CachedState {
	reader := state.NewInMemoryStateReader()
	reader.ClassHashToCompiledClass[erc20Hash] = Erc20Class()
	reader.ClassHashToCompiledClass[accountHash] = AccountClass()
	reader.AddressToClassHash[tokenAddress] = erc20Hash
	reader.AddressToClassHash[accountAddress] = accountHash
	reader.AddressToStorage[types.StorageEntry{Address: accountAddress, Key: publicKeyVariable}] = publicKey
	low, _ := starkhash.Erc20BalanceKeys(accountAddress)
	reader.AddressToStorage[types.StorageEntry{Address: tokenAddress, Key: low}] = felt.FromUint64(balance)
	return state.NewCachedState(reader, nil)
}

func newTestInvoker(t *testing.T, cfg Config) *Invoker {
	invoker, err := NewInvoker(NewDefaultRegistry(), cfg)
	require.NoError(t, err)
	return invoker
}

func testTxContext(signature ...felt.Felt) *execution.TransactionExecutionContext {
	return &execution.TransactionExecutionContext{
		AccountContractAddress: accountAddress,
		Signature:              signature,
		Version:                felt.One,
	}
}

func balanceOf(t *testing.T, s state.StateReader, owner types.Address) uint64 {
	low, _ := starkhash.Erc20BalanceKeys(owner)
	value, err := s.GetStorageAt(types.StorageEntry{Address: tokenAddress, Key: low})
	require.NoError(t, err)
	return value.Uint64()
}

func TestInvoker_Erc20Transfer(t *testing.T) {
	s := newTestState(1_000)
	invoker := newTestInvoker(t, Config{})
	resources := execution.NewResourcesManager()
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)

	entryPoint := execution.NewExecutionEntryPoint(tokenAddress, felt.FromUint64s(0x2000, 300, 0), starkhash.TransferSelector, accountAddress, contractclass.External)
	result, err := invoker.Execute(entryPoint, s, blockContext, resources, testTxContext(), 10_000)
	require.NoError(t, err)

	call := result.CallInfo
	assert.Equal(t, []felt.Felt{felt.One}, call.Retdata)
	assert.Equal(t, accountAddress, call.CallerAddress)
	assert.Equal(t, erc20Hash, *call.ClassHash)
	assert.Equal(t, uint64(700), balanceOf(t, s, accountAddress))
	assert.Equal(t, uint64(300), balanceOf(t, s, otherAddress))

	events, err := call.GetSortedEvents()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, tokenAddress, events[0].FromAddress)
	assert.Equal(t, []felt.Felt{TransferEventKey}, events[0].Keys)

	assert.Equal(t, uint64(4), resources.SyscallCounter[execution.StorageReadSyscall])
	assert.Equal(t, uint64(4), resources.SyscallCounter[execution.StorageWriteSyscall])
	assert.Equal(t, uint64(1), resources.SyscallCounter[execution.EmitEventSyscall])
	assert.Equal(t, call.ExecutionResources.NSteps, resources.CairoUsage.NSteps)
	assert.Equal(t, uint64(10_000)-call.ExecutionResources.NSteps, result.NStepsRemaining)
	assert.Equal(t, uint64(4), call.ExecutionResources.BuiltinInstanceCounter[txcontext.PedersenBuiltin])
}

func TestInvoker_FailuresAreExecutionErrors(t *testing.T) {
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)

	tests := map[string]struct {
		entryPoint *execution.ExecutionEntryPoint
		maxSteps   uint64
		want       error
	}{
		"insufficient balance": {
			entryPoint: execution.NewExecutionEntryPoint(tokenAddress, felt.FromUint64s(0x2000, 5_000, 0), starkhash.TransferSelector, accountAddress, contractclass.External),
			maxSteps:   10_000,
			want:       ErrInsufficientBalance,
		},
		"program failure": {
			entryPoint: execution.NewExecutionEntryPoint(tokenAddress, felt.FromUint64s(1), starkhash.TransferSelector, accountAddress, contractclass.External),
			maxSteps:   10_000,
			want:       execution.ErrEntryPointFailed,
		},
		"contract not deployed": {
			entryPoint: execution.NewExecutionEntryPoint(otherAddress, nil, starkhash.TransferSelector, accountAddress, contractclass.External),
			maxSteps:   10_000,
			want:       execution.ErrContractNotDeployed,
		},
		"unknown selector": {
			entryPoint: execution.NewExecutionEntryPoint(tokenAddress, nil, starkhash.SelectorFromName("mint"), accountAddress, contractclass.External),
			maxSteps:   10_000,
			want:       execution.ErrEntryPointNotFound,
		},
		"step limit": {
			entryPoint: execution.NewExecutionEntryPoint(tokenAddress, felt.FromUint64s(0x2000, 300, 0), starkhash.TransferSelector, accountAddress, contractclass.External),
			maxSteps:   100,
			want:       execution.ErrStepLimitExceeded,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			invoker := newTestInvoker(t, Config{})
			_, err := invoker.Execute(test.entryPoint, newTestState(1_000), blockContext, execution.NewResourcesManager(), testTxContext(), test.maxSteps)
			if !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
			if !execution.IsExecutionError(err) {
				t.Errorf("expected an execution error, got %v", err)
			}
		})
	}
}

func TestInvoker_AccountValidationChecksSignature(t *testing.T) {
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)
	entryPoint := execution.NewExecutionEntryPoint(accountAddress, nil, starkhash.ValidateSelector, types.NullAddress, contractclass.External)

	invoker := newTestInvoker(t, Config{})
	result, err := invoker.Execute(entryPoint, newTestState(0), blockContext, execution.NewResourcesManager(), testTxContext(publicKey), 10_000)
	require.NoError(t, err)
	assert.Equal(t, []felt.Felt{starkhash.ValidRetdata}, result.CallInfo.Retdata)

	_, err = invoker.Execute(entryPoint, newTestState(0), blockContext, execution.NewResourcesManager(), testTxContext(felt.One), 10_000)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestInvoker_AccountExecuteCallsOtherContract(t *testing.T) {
	s := newTestState(1_000)
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)
	calldata := append([]felt.Felt{tokenAddress.Felt, starkhash.BalanceOfSelector, felt.One}, accountAddress.Felt)
	entryPoint := execution.NewExecutionEntryPoint(accountAddress, calldata, starkhash.ExecuteSelector, types.NullAddress, contractclass.External)

	result, err := newTestInvoker(t, Config{}).Execute(entryPoint, s, blockContext, execution.NewResourcesManager(), testTxContext(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1_000, 0), result.CallInfo.Retdata)
	require.Len(t, result.CallInfo.InternalCalls, 1)
	internal := result.CallInfo.InternalCalls[0]
	assert.Equal(t, accountAddress, internal.CallerAddress)
	assert.Equal(t, tokenAddress, internal.ContractAddress)
	assert.ErrorIs(t, execution.VerifyNoCallsToOtherContracts(result.CallInfo), execution.ErrUnauthorizedContractCall)
}

func TestInvoker_RecursionDepthIsLimited(t *testing.T) {
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)
	blockContext.MaxRecursionDepth = 0
	calldata := append([]felt.Felt{tokenAddress.Felt, starkhash.BalanceOfSelector, felt.One}, accountAddress.Felt)
	entryPoint := execution.NewExecutionEntryPoint(accountAddress, calldata, starkhash.ExecuteSelector, types.NullAddress, contractclass.External)

	_, err := newTestInvoker(t, Config{}).Execute(entryPoint, newTestState(0), blockContext, execution.NewResourcesManager(), testTxContext(), 10_000)
	assert.ErrorIs(t, err, execution.ErrRecursionDepthExceeded)
}

func TestInvoker_StateFailuresAreNotExecutionErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	injected := errors.New("injected")
	s.EXPECT().GetClassHashAt(tokenAddress).Return(types.ClassHash{}, injected)

	entryPoint := execution.NewExecutionEntryPoint(tokenAddress, nil, starkhash.BalanceOfSelector, accountAddress, contractclass.External)
	_, err := newTestInvoker(t, Config{}).Execute(entryPoint, s, txcontext.DefaultBlockContext(txcontext.TestNetChainID), execution.NewResourcesManager(), testTxContext(), 10_000)
	if !errors.Is(err, injected) {
		t.Errorf("unexpected error, wanted %v, got %v", injected, err)
	}
	if execution.IsExecutionError(err) {
		t.Errorf("state failure must not be reported as execution error")
	}
}

func TestInvoker_UnregisteredProgramIsNotExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	hash := types.ClassHashFromUint64(0x31)
	class := &contractclass.DeprecatedClass{
		Program: "unregistered",
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External: entryPoints(starkhash.DefaultEntryPointSelector),
		},
	}
	s.EXPECT().GetClassHashAt(otherAddress).Return(hash, nil)
	s.EXPECT().GetContractClass(hash).Return(class, nil)

	entryPoint := execution.NewExecutionEntryPoint(otherAddress, nil, starkhash.DefaultEntryPointSelector, accountAddress, contractclass.External)
	_, err := newTestInvoker(t, Config{}).Execute(entryPoint, s, txcontext.DefaultBlockContext(txcontext.TestNetChainID), execution.NewResourcesManager(), testTxContext(), 1_000)
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrProgramNotFound, err)
	}
	if execution.IsExecutionError(err) {
		t.Errorf("unregistered program must not be reported as execution error")
	}
}

func TestInvoker_ProgramCacheSkipsClassLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	hash := types.ClassHashFromUint64(0x30)
	selector := starkhash.SelectorFromName("ping")
	class := &contractclass.DeprecatedClass{
		Program: "ping",
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External: entryPoints(selector),
		},
	}
	registry := NewRegistry()
	registry.Register("ping", Program{selector: func(Syscalls, []felt.Felt) ([]felt.Felt, error) {
		return felt.FromUint64s(7), nil
	}})

	s.EXPECT().GetClassHashAt(otherAddress).Return(hash, nil).Times(2)
	s.EXPECT().GetContractClass(hash).Return(class, nil).Times(1)

	invoker, err := NewInvoker(registry, Config{ProgramCacheSize: 4})
	require.NoError(t, err)
	entryPoint := execution.NewExecutionEntryPoint(otherAddress, nil, selector, accountAddress, contractclass.External)
	for i := 0; i < 2; i++ {
		result, err := invoker.Execute(entryPoint, s, txcontext.DefaultBlockContext(txcontext.TestNetChainID), execution.NewResourcesManager(), testTxContext(), 1_000)
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64s(7), result.CallInfo.Retdata)
	}
}

func TestInvoker_UnknownSelectorFallsBackToDefaultEntryPoint(t *testing.T) {
	hash := types.ClassHashFromUint64(0x40)
	reader := state.NewInMemoryStateReader()
	reader.ClassHashToCompiledClass[hash] = &contractclass.DeprecatedClass{
		Program: "fallback",
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External: entryPoints(starkhash.DefaultEntryPointSelector),
		},
	}
	reader.AddressToClassHash[otherAddress] = hash
	registry := NewRegistry()
	registry.Register("fallback", Program{starkhash.DefaultEntryPointSelector: func(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
		return calldata, nil
	}})

	invoker, err := NewInvoker(registry, Config{})
	require.NoError(t, err)
	entryPoint := execution.NewExecutionEntryPoint(otherAddress, felt.FromUint64s(1, 2), starkhash.SelectorFromName("anything"), accountAddress, contractclass.External)
	result, err := invoker.Execute(entryPoint, state.NewCachedState(reader, nil), txcontext.DefaultBlockContext(txcontext.TestNetChainID), execution.NewResourcesManager(), testTxContext(), 1_000)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1, 2), result.CallInfo.Retdata)
}

func TestInvoker_UnknownBuiltinIsRejected(t *testing.T) {
	hash := types.ClassHashFromUint64(0x50)
	selector := starkhash.SelectorFromName("hash")
	reader := state.NewInMemoryStateReader()
	reader.ClassHashToCompiledClass[hash] = &contractclass.DeprecatedClass{
		Program: "builtin",
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External: entryPoints(selector),
		},
	}
	reader.AddressToClassHash[otherAddress] = hash
	registry := NewRegistry()
	registry.Register("builtin", Program{selector: func(sys Syscalls, _ []felt.Felt) ([]felt.Felt, error) {
		return nil, sys.UseBuiltin("blake_builtin", 1)
	}})

	invoker, err := NewInvoker(registry, Config{})
	require.NoError(t, err)
	entryPoint := execution.NewExecutionEntryPoint(otherAddress, nil, selector, accountAddress, contractclass.External)
	_, err = invoker.Execute(entryPoint, state.NewCachedState(reader, nil), txcontext.DefaultBlockContext(txcontext.TestNetChainID), execution.NewResourcesManager(), testTxContext(), 1_000)
	assert.ErrorIs(t, err, execution.ErrInvalidBuiltinResourceUse)
}

func TestBuiltinClass(t *testing.T) {
	for _, name := range NewDefaultRegistry().Names() {
		class, err := BuiltinClass(name)
		require.NoError(t, err)
		assert.Equal(t, name, class.ProgramName())
	}
	_, err := BuiltinClass("unknown")
	assert.ErrorIs(t, err, ErrProgramNotFound)

	empty, err := contractclass.ConstructorEntryPointsEmpty(AccountWithoutValidationClass())
	require.NoError(t, err)
	assert.True(t, empty)
	assert.True(t, contractclass.IsSierraClass(AccountClass()))
	assert.False(t, contractclass.IsSierraClass(Erc20Class()))
}
