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
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// DeployAccount deploys an account contract which pays for its own
// deployment.
type DeployAccount struct {
	accountTx
	contractAddress     types.Address
	contractAddressSalt felt.Felt
	classHash           types.ClassHash
	constructorCalldata []felt.Felt
}

var deployAccountVersions = []uint64{1}

// NewDeployAccount creates an account deployment and computes its hash.
func NewDeployAccount(
	classHash types.ClassHash,
	fields txcontext.AccountTxFields,
	version felt.Felt,
	nonce felt.Felt,
	constructorCalldata []felt.Felt,
	signature []felt.Felt,
	contractAddressSalt felt.Felt,
	chainID felt.Felt,
) (*DeployAccount, error) {
	tx, err := newDeployAccount(classHash, fields, version, nonce, constructorCalldata, signature, contractAddressSalt)
	if err != nil {
		return nil, err
	}
	maxFee := tx.MaxFee()
	tx.hash = starkhash.CalculateDeployAccountTransactionHash(
		tx.version,
		tx.contractAddress,
		classHash,
		constructorCalldata,
		felt.FromUint256(&maxFee),
		nonce,
		contractAddressSalt,
		chainID,
	)
	return tx, nil
}

// NewDeployAccountWithTxHash creates an account deployment with a known hash,
// e.g. one reconstructed from a block.
func NewDeployAccountWithTxHash(
	classHash types.ClassHash,
	fields txcontext.AccountTxFields,
	version felt.Felt,
	nonce felt.Felt,
	constructorCalldata []felt.Felt,
	signature []felt.Felt,
	contractAddressSalt felt.Felt,
	hash felt.Felt,
) (*DeployAccount, error) {
	tx, err := newDeployAccount(classHash, fields, version, nonce, constructorCalldata, signature, contractAddressSalt)
	if err != nil {
		return nil, err
	}
	tx.hash = hash
	return tx, nil
}

func newDeployAccount(
	classHash types.ClassHash,
	fields txcontext.AccountTxFields,
	version felt.Felt,
	nonce felt.Felt,
	constructorCalldata []felt.Felt,
	signature []felt.Felt,
	contractAddressSalt felt.Felt,
) (*DeployAccount, error) {
	version = GetTxVersion(version)
	if err := CheckAccountTxFieldsVersion(fields, version); err != nil {
		return nil, err
	}
	address, err := starkhash.CalculateContractAddress(contractAddressSalt, classHash, constructorCalldata, types.NullAddress)
	if err != nil {
		return nil, fmt.Errorf("cannot derive account address; %w", err)
	}
	return &DeployAccount{
		accountTx: accountTx{
			version:   version,
			nonce:     nonce,
			fields:    fields,
			signature: signature,
		},
		contractAddress:     address,
		contractAddressSalt: contractAddressSalt,
		classHash:           classHash,
		constructorCalldata: constructorCalldata,
	}, nil
}

func (tx *DeployAccount) ContractAddress() types.Address {
	return tx.contractAddress
}

func (tx *DeployAccount) ContractAddressSalt() felt.Felt {
	return tx.contractAddressSalt
}

func (tx *DeployAccount) ClassHash() types.ClassHash {
	return tx.classHash
}

func (tx *DeployAccount) ConstructorCalldata() []felt.Felt {
	return tx.constructorCalldata
}

// HashValue is the hash the transaction was created with.
func (tx *DeployAccount) HashValue() felt.Felt {
	return tx.hash
}

func (tx *DeployAccount) Type() txcontext.TransactionType {
	return txcontext.DeployAccount
}

func (tx *DeployAccount) StateSelector() StateSelector {
	return StateSelector{
		ContractAddresses: []types.Address{tx.contractAddress},
		ClassHashes:       []types.ClassHash{tx.classHash},
	}
}

func (tx *DeployAccount) CreateForSimulation(flags SimulationFlags) Transaction {
	res := *tx
	res.accountTx = tx.accountTx.forSimulation(flags)
	return &res
}

// Execute deploys the account, runs its constructor and validation on a
// transactional state, commits the changes unless the transaction reverted,
// and charges the fee.
func (tx *DeployAccount) Execute(s state.State, blockContext *txcontext.BlockContext, invoker execution.EntryPointInvoker) (*execution.TransactionExecutionInfo, error) {
	return tx.execute(lifecycle{
		txType:            txcontext.DeployAccount,
		supportedVersions: deployAccountVersions,
		sender:            tx.contractAddress,
		estimatedSteps:    execution.EstimatedDeployAccountSteps,
		estimatedChanges: state.StateChangesCount{
			NStorageUpdates:    1,
			NClassHashUpdates:  1,
			NModifiedContracts: 1,
		},
		apply: tx.apply,
	}, s, blockContext, invoker)
}

func (tx *DeployAccount) apply(
	s *state.CachedState,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	invoker execution.EntryPointInvoker,
) (applied, error) {
	class, err := s.GetContractClass(tx.classHash)
	if err != nil {
		return applied{}, err
	}
	if err := s.DeployContract(tx.contractAddress, tx.classHash); err != nil {
		return applied{}, err
	}

	constructorInfo, err := tx.HandleConstructor(class, s, blockContext, resources, invoker)
	if err != nil {
		return applied{}, err
	}
	res := applied{
		callInfo: constructorInfo,
		calls:    []*execution.CallInfo{constructorInfo},
	}
	if !tx.flags.SkipValidate {
		validateInfo, err := tx.RunValidateEntrypoint(s, blockContext, resources, invoker)
		if err != nil {
			return res, err
		}
		res.validateInfo = validateInfo
		res.calls = append(res.calls, validateInfo)
	}
	return res, nil
}

// HandleConstructor runs the constructor of the deployed account. Classes
// without constructor get a synthetic empty call, provided that no
// constructor calldata is given.
func (tx *DeployAccount) HandleConstructor(
	class contractclass.CompiledClass,
	s *state.CachedState,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	invoker execution.EntryPointInvoker,
) (*execution.CallInfo, error) {
	empty, err := contractclass.ConstructorEntryPointsEmpty(class)
	if err != nil {
		return nil, err
	}
	if empty {
		if len(tx.constructorCalldata) > 0 {
			return nil, ErrEmptyConstructorCalldata
		}
		return execution.EmptyConstructorCall(tx.contractAddress, types.NullAddress, &tx.classHash), nil
	}
	if tx.flags.SkipExecute {
		return nil, nil
	}

	entryPoint := execution.NewExecutionEntryPoint(
		tx.contractAddress,
		tx.constructorCalldata,
		starkhash.ConstructorSelector,
		types.NullAddress,
		contractclass.Constructor,
	)
	txContext := tx.executionContext(tx.contractAddress, blockContext.ValidateMaxNSteps)
	result, err := invoker.Execute(entryPoint, s, blockContext, resources, txContext, blockContext.ValidateMaxNSteps)
	if err != nil {
		return nil, err
	}
	if err := execution.VerifyNoCallsToOtherContracts(result.CallInfo); err != nil {
		return nil, fmt.Errorf("%w; %w", ErrInvalidContractCall, err)
	}
	return result.CallInfo, nil
}

// RunValidateEntrypoint calls __validate_deploy__ of the deployed account
// with the class hash and salt followed by the constructor calldata.
func (tx *DeployAccount) RunValidateEntrypoint(
	s *state.CachedState,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	invoker execution.EntryPointInvoker,
) (*execution.CallInfo, error) {
	calldata := make([]felt.Felt, 0, len(tx.constructorCalldata)+2)
	calldata = append(calldata, tx.classHash.Felt(), tx.contractAddressSalt)
	calldata = append(calldata, tx.constructorCalldata...)
	entryPoint := execution.NewExecutionEntryPoint(
		tx.contractAddress,
		calldata,
		starkhash.ValidateDeploySelector,
		types.NullAddress,
		contractclass.External,
	)
	return tx.validateCall(entryPoint, s, blockContext, resources, invoker)
}
