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
	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// InvokeFunction calls a function through an account. Version 0 calls the
// given entry point of the contract directly, version 1 validates the call
// with __validate__ of the account and runs it through __execute__.
type InvokeFunction struct {
	accountTx
	contractAddress    types.Address
	entryPointSelector felt.Felt
	calldata           []felt.Felt
}

var invokeFunctionVersions = []uint64{0, 1}

// NewInvokeFunction creates an invoke transaction and computes its hash. The
// selector is ignored by versions other than 0.
func NewInvokeFunction(
	contractAddress types.Address,
	entryPointSelector felt.Felt,
	fields txcontext.AccountTxFields,
	version felt.Felt,
	calldata []felt.Felt,
	signature []felt.Felt,
	nonce felt.Felt,
	chainID felt.Felt,
) (*InvokeFunction, error) {
	version = GetTxVersion(version)
	if err := CheckAccountTxFieldsVersion(fields, version); err != nil {
		return nil, err
	}
	if !version.IsZero() {
		entryPointSelector = starkhash.ExecuteSelector
	}
	maxFee := fields.MaxFee()
	return &InvokeFunction{
		accountTx: accountTx{
			version:   version,
			nonce:     nonce,
			fields:    fields,
			signature: signature,
			hash:      starkhash.CalculateInvokeTransactionHash(version, contractAddress, entryPointSelector, calldata, felt.FromUint256(&maxFee), chainID, nonce),
		},
		contractAddress:    contractAddress,
		entryPointSelector: entryPointSelector,
		calldata:           calldata,
	}, nil
}

func (tx *InvokeFunction) ContractAddress() types.Address {
	return tx.contractAddress
}

func (tx *InvokeFunction) EntryPointSelector() felt.Felt {
	return tx.entryPointSelector
}

func (tx *InvokeFunction) Calldata() []felt.Felt {
	return tx.calldata
}

func (tx *InvokeFunction) Type() txcontext.TransactionType {
	return txcontext.InvokeFunction
}

func (tx *InvokeFunction) StateSelector() StateSelector {
	return StateSelector{ContractAddresses: []types.Address{tx.contractAddress}}
}

func (tx *InvokeFunction) CreateForSimulation(flags SimulationFlags) Transaction {
	res := *tx
	res.accountTx = tx.accountTx.forSimulation(flags)
	return &res
}

func (tx *InvokeFunction) Execute(s state.State, blockContext *txcontext.BlockContext, invoker execution.EntryPointInvoker) (*execution.TransactionExecutionInfo, error) {
	return tx.execute(lifecycle{
		txType:            txcontext.InvokeFunction,
		supportedVersions: invokeFunctionVersions,
		sender:            tx.contractAddress,
		estimatedSteps:    execution.EstimatedInvokeFunctionSteps,
		estimatedChanges: state.StateChangesCount{
			NStorageUpdates:    1,
			NModifiedContracts: 1,
		},
		apply: tx.apply,
	}, s, blockContext, invoker)
}

func (tx *InvokeFunction) apply(
	s *state.CachedState,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	invoker execution.EntryPointInvoker,
) (applied, error) {
	var res applied
	if !tx.flags.SkipValidate && !tx.version.IsZero() {
		entryPoint := execution.NewExecutionEntryPoint(tx.contractAddress, tx.calldata, starkhash.ValidateSelector, types.NullAddress, contractclass.External)
		validateInfo, err := tx.validateCall(entryPoint, s, blockContext, resources, invoker)
		if err != nil {
			return res, err
		}
		res.validateInfo = validateInfo
		res.calls = append(res.calls, validateInfo)
	}
	if tx.flags.SkipExecute {
		return res, nil
	}

	entryPoint := execution.NewExecutionEntryPoint(tx.contractAddress, tx.calldata, tx.entryPointSelector, types.NullAddress, contractclass.External)
	txContext := tx.executionContext(tx.contractAddress, blockContext.InvokeTxMaxNSteps)
	result, err := invoker.Execute(entryPoint, s, blockContext, resources, txContext, blockContext.InvokeTxMaxNSteps)
	if err != nil {
		return res, err
	}
	res.callInfo = result.CallInfo
	res.calls = append(res.calls, result.CallInfo)
	return res, nil
}
