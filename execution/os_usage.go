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

package execution

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/txcontext"
)

// Estimated step counts of the OS part of a transaction, used to estimate
// the minimal fee before execution.
const (
	EstimatedDeployAccountSteps  = 3612
	EstimatedInvokeFunctionSteps = 3363
	EstimatedDeclareSteps        = 2703
)

// Names of the syscalls counted by the resources manager.
const (
	CallContractSyscall        = "call_contract"
	DelegateCallSyscall        = "delegate_call"
	DeploySyscall              = "deploy"
	EmitEventSyscall           = "emit_event"
	GetBlockNumberSyscall      = "get_block_number"
	GetBlockTimestampSyscall   = "get_block_timestamp"
	GetCallerAddressSyscall    = "get_caller_address"
	GetContractAddressSyscall  = "get_contract_address"
	GetSequencerAddressSyscall = "get_sequencer_address"
	GetTxInfoSyscall           = "get_tx_info"
	GetTxSignatureSyscall      = "get_tx_signature"
	LibraryCallSyscall         = "library_call"
	ReplaceClassSyscall        = "replace_class"
	SendMessageToL1Syscall     = "send_message_to_l1"
	StorageReadSyscall         = "storage_read"
	StorageWriteSyscall        = "storage_write"
)

func resources(steps, pedersen, rangeCheck uint64) ExecutionResources {
	builtins := map[string]uint64{}
	if pedersen > 0 {
		builtins[txcontext.PedersenBuiltin] = pedersen
	}
	if rangeCheck > 0 {
		builtins[txcontext.RangeCheckBuiltin] = rangeCheck
	}
	return ExecutionResources{NSteps: steps, BuiltinInstanceCounter: builtins}
}

var syscallResources = map[string]ExecutionResources{
	CallContractSyscall:        resources(690, 0, 20),
	DelegateCallSyscall:        resources(712, 0, 19),
	DeploySyscall:              resources(936, 7, 18),
	EmitEventSyscall:           resources(19, 0, 0),
	GetBlockNumberSyscall:      resources(40, 0, 0),
	GetBlockTimestampSyscall:   resources(38, 0, 0),
	GetCallerAddressSyscall:    resources(32, 0, 0),
	GetContractAddressSyscall:  resources(36, 0, 0),
	GetSequencerAddressSyscall: resources(34, 0, 0),
	GetTxInfoSyscall:           resources(29, 0, 0),
	GetTxSignatureSyscall:      resources(44, 0, 0),
	LibraryCallSyscall:         resources(679, 0, 20),
	ReplaceClassSyscall:        resources(73, 0, 0),
	SendMessageToL1Syscall:     resources(84, 0, 0),
	StorageReadSyscall:         resources(44, 0, 0),
	StorageWriteSyscall:        resources(46, 0, 0),
}

var txTypeResources = map[txcontext.TransactionType]ExecutionResources{
	txcontext.InvokeFunction:      resources(EstimatedInvokeFunctionSteps, 16, 80),
	txcontext.DeployAccount:       resources(EstimatedDeployAccountSteps, 23, 83),
	txcontext.Declare:             resources(EstimatedDeclareSteps, 15, 63),
	txcontext.L1Handler:           resources(1068, 11, 16),
	txcontext.Deploy:              resources(0, 0, 0),
	txcontext.InitializeBlockInfo: resources(0, 0, 0),
}

// GetAdditionalOsResources returns the resources the OS spends on top of the
// executed code, for the given syscalls and transaction type.
func GetAdditionalOsResources(syscallCounter map[string]uint64, txType txcontext.TransactionType) (ExecutionResources, error) {
	res, found := txTypeResources[txType]
	if !found {
		return ExecutionResources{}, fmt.Errorf("%w: no OS resources for transaction type %v", ErrResourcesCalculation, txType)
	}
	for name, count := range syscallCounter {
		cost, found := syscallResources[name]
		if !found {
			return ExecutionResources{}, fmt.Errorf("%w: unknown syscall %q", ErrResourcesCalculation, name)
		}
		for i := uint64(0); i < count; i++ {
			res = res.Add(cost)
		}
	}
	return res, nil
}
