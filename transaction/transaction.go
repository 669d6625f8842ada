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
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// Transaction is an account transaction ready to be executed.
type Transaction interface {
	Hash() felt.Felt
	Type() txcontext.TransactionType
	// Execute runs the full lifecycle of the transaction on the given state.
	// A reverted transaction is a successful execution whose record carries
	// a revert error. Errors are returned for rejected transactions and for
	// failures of the state or the accounting.
	Execute(s state.State, blockContext *txcontext.BlockContext, invoker execution.EntryPointInvoker) (*execution.TransactionExecutionInfo, error)
	// StateSelector lists the contracts and classes the transaction touches.
	StateSelector() StateSelector
	// CreateForSimulation returns a copy of the transaction with the given
	// flags. The copy keeps hash and address of the original.
	CreateForSimulation(flags SimulationFlags) Transaction
}

// SimulationFlags relax the lifecycle for fee estimation and simulation.
type SimulationFlags struct {
	SkipValidate    bool
	SkipExecute     bool
	SkipFeeTransfer bool
	IgnoreMaxFee    bool
	SkipNonceCheck  bool
}

// StateSelector is the part of the state a transaction may touch. It is used
// by callers to analyse conflicts between transactions.
type StateSelector struct {
	ContractAddresses []types.Address
	ClassHashes       []types.ClassHash
}

var log logger.Logger = logger.NewLogger("warning", "Transaction")

// SetLogger replaces the logger used by the transaction lifecycle.
func SetLogger(l logger.Logger) {
	log = l
}
