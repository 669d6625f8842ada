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

//go:generate mockgen -source entry_point.go -destination entry_point_mocks.go -package execution

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// InitialGasCost is the gas budget of a top level call.
const InitialGasCost = 10_000_000_000

// CallType distinguishes regular calls from library calls executing code of
// another class in the context of the caller.
type CallType int

const (
	Call CallType = iota
	Delegate
)

func (t CallType) String() string {
	if t == Delegate {
		return "DELEGATE"
	}
	return "CALL"
}

func (t CallType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CallType) UnmarshalText(data []byte) error {
	switch s := string(data); s {
	case "CALL":
		*t = Call
	case "DELEGATE":
		*t = Delegate
	default:
		return fmt.Errorf("unknown call type %q", s)
	}
	return nil
}

// ExecutionEntryPoint describes a single call of an entry point.
type ExecutionEntryPoint struct {
	ContractAddress    types.Address
	Calldata           []felt.Felt
	EntryPointSelector felt.Felt
	CallerAddress      types.Address
	EntryPointType     contractclass.EntryPointType
	CallType           CallType
	// ClassHash overrides the class deployed at ContractAddress, it is set
	// for library calls.
	ClassHash  *types.ClassHash
	InitialGas uint64
}

// NewExecutionEntryPoint creates a regular call of the given entry point.
func NewExecutionEntryPoint(
	contractAddress types.Address,
	calldata []felt.Felt,
	selector felt.Felt,
	caller types.Address,
	entryPointType contractclass.EntryPointType,
) *ExecutionEntryPoint {
	return &ExecutionEntryPoint{
		ContractAddress:    contractAddress,
		Calldata:           calldata,
		EntryPointSelector: selector,
		CallerAddress:      caller,
		EntryPointType:     entryPointType,
		CallType:           Call,
		InitialGas:         InitialGasCost,
	}
}

// ExecutionResult is the outcome of a successful entry point execution.
type ExecutionResult struct {
	CallInfo *CallInfo
	// NStepsRemaining is the part of the step budget left unused.
	NStepsRemaining uint64
}

// EntryPointInvoker executes entry points of deployed contracts. Writes
// performed by the executed code go to the given state, consumed resources
// are added to the resources manager. Failures of the executed code are
// reported as *ExecutionError, any other error is a failure of the invoker
// or the state.
type EntryPointInvoker interface {
	Execute(
		entryPoint *ExecutionEntryPoint,
		s state.State,
		blockContext *txcontext.BlockContext,
		resources *ResourcesManager,
		txContext *TransactionExecutionContext,
		maxSteps uint64,
	) (*ExecutionResult, error)
}

var (
	ErrEntryPointFailed          = errors.New("entry point execution failed")
	ErrEntryPointNotFound        = errors.New("entry point not found")
	ErrContractNotDeployed       = errors.New("contract not deployed")
	ErrStepLimitExceeded         = errors.New("step limit exceeded")
	ErrRecursionDepthExceeded    = errors.New("recursion depth exceeded")
	ErrUnauthorizedContractCall  = errors.New("unauthorized call to another contract")
	ErrResourcesCalculation      = errors.New("cannot calculate transaction resources")
	ErrInvalidBuiltinResourceUse = errors.New("invalid builtin usage")
)

// ExecutionError reports a failure of the executed code. The transaction
// lifecycle turns it into a revert.
type ExecutionError struct {
	ContractAddress types.Address
	Selector        felt.Felt
	Err             error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution of %v on %v failed; %v", e.Selector, e.ContractAddress, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsExecutionError reports whether err stems from executed code.
func IsExecutionError(err error) bool {
	var executionErr *ExecutionError
	return errors.As(err, &executionErr)
}
