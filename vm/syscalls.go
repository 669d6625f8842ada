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
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// Syscalls is the interface through which programs access the state and the
// context of the running call.
type Syscalls interface {
	StorageRead(key felt.Felt) (felt.Felt, error)
	StorageWrite(key, value felt.Felt) error
	// CallContract calls an external entry point of another contract and
	// returns its retdata.
	CallContract(address types.Address, selector felt.Felt, calldata []felt.Felt) ([]felt.Felt, error)
	EmitEvent(keys, data []felt.Felt) error
	SendMessageToL1(to types.Address, payload []felt.Felt) error
	GetCallerAddress() types.Address
	GetContractAddress() types.Address
	GetTxInfo() *execution.TransactionExecutionContext
	GetBlockInfo() txcontext.BlockInfo
	// ConsumeSteps charges steps against the budget of the transaction.
	ConsumeSteps(n uint64) error
	// UseBuiltin records n instances of the named builtin.
	UseBuiltin(name string, n uint64) error
}

// syscallSteps is charged for every syscall on top of the OS cost counted by
// the resources manager.
const syscallSteps = 10

var knownBuiltins = map[string]struct{}{
	txcontext.OutputBuiltin:       {},
	txcontext.PedersenBuiltin:     {},
	txcontext.RangeCheckBuiltin:   {},
	txcontext.EcdsaBuiltin:        {},
	txcontext.BitwiseBuiltin:      {},
	txcontext.EcOpBuiltin:         {},
	txcontext.PoseidonBuiltin:     {},
	txcontext.KeccakBuiltin:       {},
	txcontext.SegmentArenaBuiltin: {},
}

// frame is the Syscalls implementation of one running call.
type frame struct {
	run        *run
	entryPoint *execution.ExecutionEntryPoint
	depth      int
	call       *execution.CallInfo
	steps      uint64
	builtins   map[string]uint64
}

func (f *frame) syscall(name string) error {
	f.run.resources.IncrementSyscallCounter(name, 1)
	return f.ConsumeSteps(syscallSteps)
}

func (f *frame) StorageRead(key felt.Felt) (felt.Felt, error) {
	if err := f.syscall(execution.StorageReadSyscall); err != nil {
		return felt.Zero, err
	}
	value, err := f.run.state.GetStorageAt(types.StorageEntry{Address: f.entryPoint.ContractAddress, Key: key})
	if err != nil {
		return felt.Zero, &stateError{err}
	}
	f.call.StorageReadValues = append(f.call.StorageReadValues, value)
	f.call.AccessedStorageKeys[key] = struct{}{}
	return value, nil
}

func (f *frame) StorageWrite(key, value felt.Felt) error {
	if err := f.syscall(execution.StorageWriteSyscall); err != nil {
		return err
	}
	f.run.state.SetStorageAt(types.StorageEntry{Address: f.entryPoint.ContractAddress, Key: key}, value)
	f.call.AccessedStorageKeys[key] = struct{}{}
	return nil
}

func (f *frame) CallContract(address types.Address, selector felt.Felt, calldata []felt.Felt) ([]felt.Felt, error) {
	if err := f.syscall(execution.CallContractSyscall); err != nil {
		return nil, err
	}
	entryPoint := execution.NewExecutionEntryPoint(address, calldata, selector, f.entryPoint.ContractAddress, contractclass.External)
	call, err := f.run.invoker.execute(f.run, entryPoint, f.depth+1)
	if err != nil {
		return nil, err
	}
	f.call.InternalCalls = append(f.call.InternalCalls, call)
	return call.Retdata, nil
}

func (f *frame) EmitEvent(keys, data []felt.Felt) error {
	if err := f.syscall(execution.EmitEventSyscall); err != nil {
		return err
	}
	f.call.Events = append(f.call.Events, execution.OrderedEvent{Order: f.run.nEvents, Keys: keys, Data: data})
	f.run.nEvents++
	return nil
}

func (f *frame) SendMessageToL1(to types.Address, payload []felt.Felt) error {
	if err := f.syscall(execution.SendMessageToL1Syscall); err != nil {
		return err
	}
	f.call.L2ToL1Messages = append(f.call.L2ToL1Messages, execution.OrderedL2ToL1Message{Order: f.run.nMessages, ToAddress: to, Payload: payload})
	f.run.nMessages++
	f.run.txContext.NSentMessages++
	return nil
}

func (f *frame) GetCallerAddress() types.Address {
	f.run.resources.IncrementSyscallCounter(execution.GetCallerAddressSyscall, 1)
	return f.entryPoint.CallerAddress
}

func (f *frame) GetContractAddress() types.Address {
	f.run.resources.IncrementSyscallCounter(execution.GetContractAddressSyscall, 1)
	return f.entryPoint.ContractAddress
}

func (f *frame) GetTxInfo() *execution.TransactionExecutionContext {
	f.run.resources.IncrementSyscallCounter(execution.GetTxInfoSyscall, 1)
	return f.run.txContext
}

func (f *frame) GetBlockInfo() txcontext.BlockInfo {
	f.run.resources.IncrementSyscallCounter(execution.GetBlockNumberSyscall, 1)
	return f.run.blockContext.BlockInfo
}

func (f *frame) ConsumeSteps(n uint64) error {
	if n > f.run.remaining {
		f.steps += f.run.remaining
		f.run.remaining = 0
		return fmt.Errorf("%w: budget of %d steps", execution.ErrStepLimitExceeded, f.run.maxSteps)
	}
	f.run.remaining -= n
	f.steps += n
	return nil
}

func (f *frame) UseBuiltin(name string, n uint64) error {
	if _, found := knownBuiltins[name]; !found {
		return fmt.Errorf("%w: unknown builtin %q", execution.ErrInvalidBuiltinResourceUse, name)
	}
	f.builtins[name] += n
	return nil
}

func (f *frame) resources() execution.ExecutionResources {
	builtins := make(map[string]uint64, len(f.builtins))
	for name, count := range f.builtins {
		builtins[name] = count
	}
	return execution.ExecutionResources{NSteps: f.steps, BuiltinInstanceCounter: builtins}
}
