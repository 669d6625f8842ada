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

//go:generate mockgen -source state.go -destination state_mocks.go -package state

import (
	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// StateReader provides read access to the chain state. Entries that were
// never written read as zero.
type StateReader interface {
	// GetContractClass returns the class registered under the given hash or
	// an error wrapping ErrClassNotFound.
	GetContractClass(types.ClassHash) (contractclass.CompiledClass, error)
	// GetClassHashAt returns the class deployed at the address.
	GetClassHashAt(types.Address) (types.ClassHash, error)
	// GetNonceAt returns the nonce of the account.
	GetNonceAt(types.Address) (felt.Felt, error)
	// GetStorageAt returns the value of one storage cell.
	GetStorageAt(types.StorageEntry) (felt.Felt, error)
	// GetCompiledClassHash returns the compiled class hash of a declared class.
	GetCompiledClassHash(types.ClassHash) (types.CompiledClassHash, error)
}

// State is a StateReader which also accepts writes. Transactions are executed
// against a State, the entry point invoker reads and writes through it.
type State interface {
	StateReader

	// SetContractClass registers a class.
	SetContractClass(types.ClassHash, contractclass.CompiledClass) error
	// DeployContract binds the address to the class hash. It fails if the
	// address is already in use.
	DeployContract(types.Address, types.ClassHash) error
	// IncrementNonce bumps the nonce of the account by one.
	IncrementNonce(types.Address) error
	// SetStorageAt writes one storage cell.
	SetStorageAt(types.StorageEntry, felt.Felt)
	// SetClassHashAt replaces the class of a deployed contract.
	SetClassHashAt(types.Address, types.ClassHash) error
	// SetCompiledClassHash records the compiled class hash of a class.
	SetCompiledClassHash(types.ClassHash, types.CompiledClassHash) error

	// CreateTransactional opens an overlay reading through this state and
	// buffering all writes until they are applied back with ApplyStateUpdate.
	CreateTransactional() (*CachedState, error)
	// ApplyStateUpdate writes all changes of the diff into this state.
	ApplyStateUpdate(*StateDiff) error
	// CountActualStateChanges counts the changes written so far. If given,
	// the pending fee transfer of the sender is counted as well.
	CountActualStateChanges(*FeeTokenAndSender) (StateChangesCount, error)
	// GetFeeTokenBalance returns the low and high word of the fee token
	// balance of the address.
	GetFeeTokenBalance(*txcontext.BlockContext, types.Address, txcontext.FeeType) (felt.Felt, felt.Felt, error)
}

// FeeTokenAndSender identifies the balance a fee is about to be charged from.
type FeeTokenAndSender struct {
	FeeToken types.Address
	Sender   types.Address
}

// StateChangesCount summarizes the changes a transaction commits, it is the
// input of the on-chain data cost.
type StateChangesCount struct {
	NStorageUpdates           uint64
	NClassHashUpdates         uint64
	NCompiledClassHashUpdates uint64
	NModifiedContracts        uint64
}
