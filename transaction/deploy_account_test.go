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
	"errors"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/fee"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/Fantom-foundation/Starkrun/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDeployAccount_HashIsDeterministic(t *testing.T) {
	a := newTestDeployAccount(t, accountClassHash, 1_000, 0, 10)
	b := newTestDeployAccount(t, accountClassHash, 1_000, 0, 10)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.ContractAddress(), b.ContractAddress())

	for name, other := range map[string]*DeployAccount{
		"max fee":  newTestDeployAccount(t, accountClassHash, 1_001, 0, 10),
		"nonce":    newTestDeployAccount(t, accountClassHash, 1_000, 1, 10),
		"calldata": newTestDeployAccount(t, accountClassHash, 1_000, 0, 11),
		"class":    newTestDeployAccount(t, legacyAccountClassHash, 1_000, 0, 10),
	} {
		if other.Hash() == a.Hash() {
			t.Errorf("changing the %s must change the hash", name)
		}
	}
}

func TestDeployAccount_AddressIsDerivedFromNullDeployer(t *testing.T) {
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10)
	want, err := starkhash.CalculateContractAddress(felt.Zero, accountClassHash, felt.FromUint64s(10), types.NullAddress)
	require.NoError(t, err)
	assert.Equal(t, want, tx.ContractAddress())
	assert.Equal(t, felt.Zero, tx.ContractAddressSalt())
	assert.Equal(t, accountClassHash, tx.ClassHash())
	assert.Equal(t, felt.FromUint64s(10), tx.ConstructorCalldata())
	assert.Equal(t, tx.Hash(), tx.HashValue())
	assert.Equal(t, txcontext.DeployAccount, tx.Type())
}

func TestDeployAccount_WithTxHashKeepsHashAndDerivesAddress(t *testing.T) {
	hash := felt.FromUint64(0x1234)
	tx, err := NewDeployAccountWithTxHash(accountClassHash, txcontext.NewDeprecatedAccountTxFields(0), felt.One, felt.Zero, felt.FromUint64s(10), nil, felt.Zero, hash)
	require.NoError(t, err)
	assert.Equal(t, hash, tx.Hash())
	assert.Equal(t, newTestDeployAccount(t, accountClassHash, 0, 0, 10).ContractAddress(), tx.ContractAddress())

	_, err = NewDeployAccountWithTxHash(accountClassHash, &txcontext.CurrentAccountTxFields{}, felt.One, felt.Zero, nil, nil, felt.Zero, hash)
	assert.ErrorIs(t, err, ErrFieldsVersionMismatch)
}

func TestDeployAccount_ConstructionErrors(t *testing.T) {
	_, err := NewDeployAccount(types.ClassHash{}, txcontext.NewDeprecatedAccountTxFields(0), felt.One, felt.Zero, nil, nil, felt.Zero, txcontext.TestNet2ChainID)
	assert.Error(t, err)

	_, err = NewDeployAccount(accountClassHash, &txcontext.CurrentAccountTxFields{}, felt.One, felt.Zero, nil, nil, felt.Zero, txcontext.TestNet2ChainID)
	var mismatch *FieldsVersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, felt.One, mismatch.Version)
}

func TestDeployAccount_QueryVersionIsMasked(t *testing.T) {
	version := QueryVersionBase.Add(felt.One)
	tx, err := NewDeployAccount(accountClassHash, txcontext.NewDeprecatedAccountTxFields(0), version, felt.Zero, nil, nil, felt.Zero, txcontext.TestNet2ChainID)
	require.NoError(t, err)
	assert.Equal(t, felt.One, tx.Version())
}

func TestDeployAccount_StateSelector(t *testing.T) {
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10)
	assert.Equal(t, StateSelector{
		ContractAddresses: []types.Address{tx.ContractAddress()},
		ClassHashes:       []types.ClassHash{accountClassHash},
	}, tx.StateSelector())
}

func TestDeployAccount_ExecuteRunsConstructorWithCalldata(t *testing.T) {
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	require.False(t, info.IsReverted(), info.RevertError)

	require.NotNil(t, info.CallInfo)
	assert.Equal(t, felt.FromUint64s(10), info.CallInfo.Calldata)
	assert.Equal(t, contractclass.Constructor, *info.CallInfo.EntryPointType)
	require.NotNil(t, info.ValidateCallInfo)
	assert.Equal(t, []felt.Felt{starkhash.ValidRetdata}, info.ValidateCallInfo.Retdata)
	assert.GreaterOrEqual(t, info.ActualResources[txcontext.NSteps], uint64(execution.EstimatedDeployAccountSteps))
	assert.Equal(t, txcontext.DeployAccount, *info.TxType)

	assert.Equal(t, accountClassHash, env.classHashAt(t, tx.ContractAddress()))
	assert.Equal(t, uint64(1), env.nonce(t, tx.ContractAddress()))
}

func TestDeployAccount_DeployingTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	first := newTestDeployAccount(t, legacyAccountClassHash, 0, 0)
	second := newTestDeployAccount(t, legacyAccountClassHash, 0, 1)
	require.Equal(t, first.ContractAddress(), second.ContractAddress())

	info, err := first.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	assert.False(t, info.IsReverted())
	assert.Empty(t, info.CallInfo.InternalCalls)

	_, err = second.Execute(env.state, env.blockContext, env.invoker)
	var unavailable *state.AddressUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, state.ErrContractAddressUnavailable)
	assert.Equal(t, first.ContractAddress(), unavailable.Address)
}

func TestDeployAccount_UnsupportedVersionTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	invoker := execution.NewMockEntryPointInvoker(ctrl)

	tx, err := NewDeployAccount(accountClassHash, txcontext.NewDeprecatedAccountTxFields(9_000), felt.FromUint64(2), felt.Zero, nil, nil, felt.One, txcontext.TestNetChainID)
	require.NoError(t, err)

	_, err = tx.Execute(s, txcontext.DefaultBlockContext(txcontext.TestNetChainID), invoker)
	var unsupported *UnsupportedTxVersionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "DeployAccount", unsupported.TxType)
	assert.Equal(t, felt.FromUint64(2), unsupported.Version)
	assert.Equal(t, []uint64{1}, unsupported.Supported)
}

func TestDeployAccount_InvalidNonceFailsBeforeExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	invoker := execution.NewMockEntryPointInvoker(ctrl)
	tx := newTestDeployAccount(t, accountClassHash, 0, 5, 10)

	s.EXPECT().GetNonceAt(tx.ContractAddress()).Return(felt.Zero, nil)

	_, err := tx.Execute(s, txcontext.DefaultBlockContext(txcontext.TestNetChainID), invoker)
	var invalid *InvalidNonceError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, felt.Zero, invalid.Expected)
	assert.Equal(t, felt.FromUint64(5), invalid.Actual)
}

func TestDeployAccount_SkipNonceCheckStillConsumesNonce(t *testing.T) {
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 5, 10).CreateForSimulation(SimulationFlags{SkipNonceCheck: true})

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	assert.False(t, info.IsReverted())
	assert.Equal(t, uint64(1), env.nonce(t, tx.(*DeployAccount).ContractAddress()))
}

func TestDeployAccount_EmptyConstructorRejectsCalldata(t *testing.T) {
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, legacyAccountClassHash, 0, 0, 1)

	_, err := tx.Execute(env.state, env.blockContext, env.invoker)
	assert.ErrorIs(t, err, ErrEmptyConstructorCalldata)
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())
}

func TestDeployAccount_MissingClassIsStateError(t *testing.T) {
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, types.ClassHashFromUint64(0x404), 0, 0)

	_, err := tx.Execute(env.state, env.blockContext, env.invoker)
	assert.ErrorIs(t, err, state.ErrClassNotFound)
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())
}

func TestDeployAccount_ValidationCallingOtherContractReverts(t *testing.T) {
	env := newTestEnv(t)
	tx, err := NewDeployAccount(maliciousClassHash, txcontext.NewDeprecatedAccountTxFields(0), felt.One, felt.Zero, []felt.Felt{feeToken.Felt}, nil, felt.Zero, txcontext.TestNet2ChainID)
	require.NoError(t, err)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	require.True(t, info.IsReverted())
	assert.ErrorIs(t, info.RevertCause, ErrInvalidContractCall)
	assert.Nil(t, info.CallInfo)
	assert.Nil(t, info.ValidateCallInfo)
	assert.NotEmpty(t, info.ActualResources)

	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())
	assert.Equal(t, uint64(1), env.nonce(t, tx.ContractAddress()))
}

func TestDeployAccount_SkipValidateIgnoresValidator(t *testing.T) {
	env := newTestEnv(t)
	tx, err := NewDeployAccount(maliciousClassHash, txcontext.NewDeprecatedAccountTxFields(0), felt.One, felt.Zero, []felt.Felt{feeToken.Felt}, nil, felt.Zero, txcontext.TestNet2ChainID)
	require.NoError(t, err)

	info, err := tx.CreateForSimulation(SimulationFlags{SkipValidate: true}).Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	assert.False(t, info.IsReverted())
	assert.Nil(t, info.ValidateCallInfo)
	assert.Equal(t, maliciousClassHash, env.classHashAt(t, tx.ContractAddress()))
}

func TestDeployAccount_ConstructorCallingOtherContractReverts(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := execution.NewMockEntryPointInvoker(ctrl)
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10)

	invoker.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), env.blockContext.ValidateMaxNSteps).
		Return(&execution.ExecutionResult{CallInfo: &execution.CallInfo{
			ContractAddress: tx.ContractAddress(),
			InternalCalls:   []*execution.CallInfo{{ContractAddress: feeToken}},
		}}, nil)

	info, err := tx.Execute(env.state, env.blockContext, invoker)
	require.NoError(t, err)
	require.True(t, info.IsReverted())
	assert.ErrorIs(t, info.RevertCause, ErrInvalidContractCall)
	assert.ErrorIs(t, info.RevertCause, execution.ErrUnauthorizedContractCall)
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())
}

func TestDeployAccount_SierraAccountMustReturnValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := execution.NewMockEntryPointInvoker(ctrl)
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10)

	gomock.InOrder(
		invoker.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&execution.ExecutionResult{CallInfo: &execution.CallInfo{ContractAddress: tx.ContractAddress()}}, nil),
		invoker.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(entryPoint *execution.ExecutionEntryPoint, _ state.State, _ *txcontext.BlockContext, _ *execution.ResourcesManager, _ *execution.TransactionExecutionContext, _ uint64) (*execution.ExecutionResult, error) {
				want := []felt.Felt{accountClassHash.Felt(), felt.Zero, felt.FromUint64(10)}
				if entryPoint.EntryPointSelector != starkhash.ValidateDeploySelector || !felt.Equals(want, entryPoint.Calldata) {
					return nil, errors.New("unexpected validation call")
				}
				return &execution.ExecutionResult{CallInfo: &execution.CallInfo{ContractAddress: tx.ContractAddress(), Retdata: felt.FromUint64s(1)}}, nil
			}),
	)

	info, err := tx.Execute(env.state, env.blockContext, invoker)
	require.NoError(t, err)
	require.True(t, info.IsReverted())
	assert.ErrorIs(t, info.RevertCause, ErrWrongValidateRetdata)
}

func TestDeployAccount_SkipExecuteInvokesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := execution.NewMockEntryPointInvoker(ctrl)
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 0, 10).CreateForSimulation(SimulationFlags{SkipExecute: true, SkipFeeTransfer: true})

	info, err := tx.Execute(env.state, env.blockContext, invoker)
	require.NoError(t, err)
	assert.False(t, info.IsReverted())
	assert.Nil(t, info.CallInfo)
	assert.Nil(t, info.ValidateCallInfo)
}

func TestDeployAccount_FailingConstructorRevertsAndPaysFee(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	tx := newTestDeployAccount(t, accountClassHash, 10_000, 0)
	env.fund(tx.ContractAddress(), 20_000)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	require.True(t, info.IsReverted())
	assert.ErrorIs(t, info.RevertCause, vm.ErrInvalidCalldata)
	assert.True(t, execution.IsExecutionError(info.RevertCause))
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())

	require.NotNil(t, info.FeeTransferCallInfo)
	charged := info.ActualFee.Uint64()
	assert.NotZero(t, charged)
	assert.Equal(t, 20_000-charged, env.balance(t, tx.ContractAddress()))
	assert.Equal(t, charged, env.balance(t, env.blockContext.BlockInfo.SequencerAddress))
}

func TestDeployAccount_ChargesActualFee(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	tx := newTestDeployAccount(t, accountClassHash, 10_000, 0, 10)
	env.fund(tx.ContractAddress(), 20_000)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	require.False(t, info.IsReverted(), info.RevertError)

	want, err := fee.CalculateTxFee(info.ActualResources, env.blockContext, txcontext.Eth)
	require.NoError(t, err)
	assert.Equal(t, want, info.ActualFee)
	require.NotNil(t, info.FeeTransferCallInfo)
	assert.Equal(t, 20_000-want.Uint64(), env.balance(t, tx.ContractAddress()))
	assert.Equal(t, accountClassHash, env.classHashAt(t, tx.ContractAddress()))

	events, err := info.GetSortedEvents()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, feeToken, events[0].FromAddress)
}

func TestDeployAccount_FeeAboveMaxFeeReverts(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	// The minimal fee is 3079, the actual deployment costs more.
	tx := newTestDeployAccount(t, accountClassHash, 3_500, 0, 10)
	env.fund(tx.ContractAddress(), 20_000)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	require.True(t, info.IsReverted())
	assert.True(t, strings.HasPrefix(info.RevertError, "Calculated fee ("), info.RevertError)
	assert.ErrorIs(t, info.RevertCause, fee.ErrActualFeeExceedsMaxFee)
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())

	require.NotNil(t, info.FeeTransferCallInfo)
	assert.Equal(t, uint64(3_500), info.ActualFee.Uint64())
	assert.Equal(t, uint64(16_500), env.balance(t, tx.ContractAddress()))
	assert.Equal(t, uint64(1), env.nonce(t, tx.ContractAddress()))
}

func TestDeployAccount_MaxFeeTooLow(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	tx := newTestDeployAccount(t, accountClassHash, 100, 0, 10)

	_, err := tx.Execute(env.state, env.blockContext, env.invoker)
	var tooLow *MaxFeeTooLowError
	require.ErrorAs(t, err, &tooLow)
	assert.Equal(t, uint64(100), tooLow.MaxFee.Uint64())
	assert.Equal(t, uint64(3_079), tooLow.MinimalFee.Uint64())
	assert.True(t, env.classHashAt(t, tx.ContractAddress()).IsZero())
}

func TestDeployAccount_BalanceCheck(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	tx := newTestDeployAccount(t, accountClassHash, 5_000, 0, 10)
	env.fund(tx.ContractAddress(), 100)

	_, err := tx.Execute(env.state, env.blockContext, env.invoker)
	var exceeds *MaxFeeExceedsBalanceError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, uint64(5_000), exceeds.MaxFee.Uint64())
	assert.Equal(t, felt.FromUint64(100), exceeds.BalanceLow)
	assert.Equal(t, felt.Zero, exceeds.BalanceHigh)
}

func TestDeployAccount_BalanceWithHighWordIsSufficient(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := state.NewMockState(ctrl)
	tx := newTestDeployAccount(t, accountClassHash, 5_000, 0, 10)
	blockContext := txcontext.DefaultBlockContext(txcontext.TestNetChainID)
	injected := errors.New("injected")

	gomock.InOrder(
		s.EXPECT().GetNonceAt(tx.ContractAddress()).Return(felt.Zero, nil),
		s.EXPECT().IncrementNonce(tx.ContractAddress()).Return(nil),
		s.EXPECT().GetFeeTokenBalance(blockContext, tx.ContractAddress(), txcontext.Eth).Return(felt.Zero, felt.One, nil),
		s.EXPECT().CreateTransactional().Return(nil, injected),
	)

	_, err := tx.Execute(s, blockContext, execution.NewMockEntryPointInvoker(ctrl))
	assert.ErrorIs(t, err, injected)
}

func TestDeployAccount_FeeTransferFailureIsReportedAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := execution.NewMockEntryPointInvoker(ctrl)
	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 1_000, 0, 10)
	env.fund(tx.ContractAddress(), 1_000)
	injected := errors.New("injected")

	invoker.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(entryPoint *execution.ExecutionEntryPoint, _ state.State, _ *txcontext.BlockContext, _ *execution.ResourcesManager, _ *execution.TransactionExecutionContext, _ uint64) (*execution.ExecutionResult, error) {
			switch entryPoint.EntryPointSelector {
			case starkhash.ConstructorSelector:
				return &execution.ExecutionResult{CallInfo: &execution.CallInfo{ContractAddress: tx.ContractAddress()}}, nil
			case starkhash.ValidateDeploySelector:
				return &execution.ExecutionResult{CallInfo: &execution.CallInfo{ContractAddress: tx.ContractAddress(), Retdata: []felt.Felt{starkhash.ValidRetdata}}}, nil
			}
			return nil, injected
		}).Times(3)

	info, err := tx.Execute(env.state, env.blockContext, invoker)
	assert.ErrorIs(t, err, ErrFeeTransferFailed)
	assert.ErrorIs(t, err, injected)
	require.NotNil(t, info)
	assert.False(t, info.IsReverted())
	assert.Nil(t, info.FeeTransferCallInfo)
	assert.Equal(t, accountClassHash, env.classHashAt(t, tx.ContractAddress()))
}

func TestDeployAccount_FailedFeeTransferDoesNotDebitTheAccount(t *testing.T) {
	env := newTestEnv(t)
	env.setGasPrice(1)
	tx := newTestDeployAccount(t, accountClassHash, 20_000, 0, 10)
	env.fund(tx.ContractAddress(), 20_000)

	// crediting the sequencer overflows its balance
	sequencerLow, sequencerHigh := starkhash.Erc20BalanceKeys(env.blockContext.BlockInfo.SequencerAddress)
	maxWord := felt.FromUint256(&txcontext.MaxUint128)
	env.state.SetStorageAt(types.StorageEntry{Address: feeToken, Key: sequencerLow}, maxWord)
	env.state.SetStorageAt(types.StorageEntry{Address: feeToken, Key: sequencerHigh}, maxWord)

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	assert.ErrorIs(t, err, ErrFeeTransferFailed)
	require.NotNil(t, info)
	assert.False(t, info.ActualFee.IsZero())
	assert.Equal(t, uint64(20_000), env.balance(t, tx.ContractAddress()))
	assert.Equal(t, accountClassHash, env.classHashAt(t, tx.ContractAddress()))
}

func TestDeployAccount_CreateForSimulationKeepsIdentity(t *testing.T) {
	tx := newTestDeployAccount(t, accountClassHash, 1_000, 0, 10)
	sim := tx.CreateForSimulation(SimulationFlags{IgnoreMaxFee: true}).(*DeployAccount)

	assert.Equal(t, tx.Hash(), sim.Hash())
	assert.Equal(t, tx.ContractAddress(), sim.ContractAddress())
	assert.Equal(t, txcontext.MaxUint128, sim.MaxFee())
	maxFee := tx.MaxFee()
	assert.Equal(t, uint64(1_000), maxFee.Uint64())
}

func TestDeployAccount_CreateForSimulationWithResourceBounds(t *testing.T) {
	fields := &txcontext.CurrentAccountTxFields{
		L1ResourceBounds: &txcontext.ResourceBounds{MaxAmount: 10, MaxPricePerUnit: *uint256.NewInt(10)},
	}
	tx, err := NewDeployAccount(accountClassHash, fields, felt.FromUint64(3), felt.Zero, nil, nil, felt.Zero, txcontext.TestNet2ChainID)
	require.NoError(t, err)

	sim := tx.CreateForSimulation(SimulationFlags{IgnoreMaxFee: true}).(*DeployAccount)
	simFields := sim.fields.(*txcontext.CurrentAccountTxFields)
	assert.Equal(t, ^uint64(0), simFields.L1ResourceBounds.MaxAmount)
	assert.Equal(t, txcontext.MaxUint128, simFields.L1ResourceBounds.MaxPricePerUnit)
	assert.Equal(t, uint64(10), fields.L1ResourceBounds.MaxAmount)
	assert.Equal(t, tx.Hash(), sim.Hash())
}

func TestDeployAccount_RevertIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLog := logger.NewMockLogger(ctrl)
	SetLogger(mockLog)
	defer SetLogger(logger.NewLogger("warning", "Transaction"))

	env := newTestEnv(t)
	tx := newTestDeployAccount(t, accountClassHash, 0, 0)
	mockLog.EXPECT().Debugf(gomock.Any(), txcontext.DeployAccount, tx.Hash(), gomock.Any())

	info, err := tx.Execute(env.state, env.blockContext, env.invoker)
	require.NoError(t, err)
	assert.True(t, info.IsReverted())
}
