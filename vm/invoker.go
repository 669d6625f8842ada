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
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	lru "github.com/hashicorp/golang-lru"
)

// entryPointSteps is charged for entering an entry point.
const entryPointSteps = 40

// Config configures an Invoker.
type Config struct {
	// ProgramCacheSize is the number of resolved classes kept in memory,
	// zero disables the cache.
	ProgramCacheSize int
}

// Invoker executes entry points by running the native programs registered
// for the classes of the called contracts.
type Invoker struct {
	registry *Registry
	cache    *lru.Cache
}

// resolvedClass is a class together with the program it refers to.
type resolvedClass struct {
	class   contractclass.CompiledClass
	program Program
}

// stateError marks failures of the state, which must not be mistaken for
// failures of the executed code.
type stateError struct {
	err error
}

func (e *stateError) Error() string {
	return e.err.Error()
}

func (e *stateError) Unwrap() error {
	return e.err
}

// run is the state shared by all calls of one top level execution.
type run struct {
	invoker      *Invoker
	state        state.State
	blockContext *txcontext.BlockContext
	resources    *execution.ResourcesManager
	txContext    *execution.TransactionExecutionContext
	maxSteps     uint64
	remaining    uint64
	nEvents      uint64
	nMessages    uint64
}

func NewInvoker(registry *Registry, cfg Config) (*Invoker, error) {
	invoker := &Invoker{registry: registry}
	if cfg.ProgramCacheSize > 0 {
		cache, err := lru.New(cfg.ProgramCacheSize)
		if err != nil {
			return nil, fmt.Errorf("cannot create program cache; %w", err)
		}
		invoker.cache = cache
	}
	return invoker, nil
}

// Execute runs the entry point and every call it issues within a budget of
// maxSteps steps.
func (i *Invoker) Execute(
	entryPoint *execution.ExecutionEntryPoint,
	s state.State,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	txContext *execution.TransactionExecutionContext,
	maxSteps uint64,
) (*execution.ExecutionResult, error) {
	r := &run{
		invoker:      i,
		state:        s,
		blockContext: blockContext,
		resources:    resources,
		txContext:    txContext,
		maxSteps:     maxSteps,
		remaining:    maxSteps,
	}
	call, err := i.execute(r, entryPoint, 0)
	if err != nil {
		var stateErr *stateError
		if errors.As(err, &stateErr) {
			return nil, stateErr.err
		}
		return nil, err
	}
	return &execution.ExecutionResult{CallInfo: call, NStepsRemaining: r.remaining}, nil
}

func (i *Invoker) execute(r *run, entryPoint *execution.ExecutionEntryPoint, depth int) (*execution.CallInfo, error) {
	fail := func(err error) error {
		var stateErr *stateError
		if errors.As(err, &stateErr) {
			return stateErr
		}
		return &execution.ExecutionError{
			ContractAddress: entryPoint.ContractAddress,
			Selector:        entryPoint.EntryPointSelector,
			Err:             err,
		}
	}

	if depth > r.blockContext.MaxRecursionDepth {
		return nil, fail(fmt.Errorf("%w: depth %d", execution.ErrRecursionDepthExceeded, depth))
	}

	classHash, err := i.classHashOf(r.state, entryPoint)
	if err != nil {
		return nil, fail(err)
	}
	resolved, err := i.resolve(r.state, classHash)
	if err != nil {
		return nil, fail(err)
	}
	fn, err := resolved.entryPointFunc(entryPoint)
	if err != nil {
		return nil, fail(err)
	}

	callType := entryPoint.CallType
	entryPointType := entryPoint.EntryPointType
	selector := entryPoint.EntryPointSelector
	call := &execution.CallInfo{
		CallerAddress:       entryPoint.CallerAddress,
		CallType:            &callType,
		ContractAddress:     entryPoint.ContractAddress,
		ClassHash:           &classHash,
		EntryPointSelector:  &selector,
		EntryPointType:      &entryPointType,
		Calldata:            entryPoint.Calldata,
		AccessedStorageKeys: map[felt.Felt]struct{}{},
	}
	if callType == execution.Call {
		address := entryPoint.ContractAddress
		call.CodeAddress = &address
	}

	f := &frame{
		run:        r,
		entryPoint: entryPoint,
		depth:      depth,
		call:       call,
		builtins:   map[string]uint64{},
	}
	defer func() {
		call.ExecutionResources = f.resources()
		r.resources.AddCairoUsage(call.ExecutionResources)
	}()

	if err := f.ConsumeSteps(entryPointSteps); err != nil {
		return nil, fail(err)
	}
	retdata, err := fn(f, entryPoint.Calldata)
	if err != nil {
		if execution.IsExecutionError(err) {
			return nil, fail(err)
		}
		return nil, fail(fmt.Errorf("%w; %w", execution.ErrEntryPointFailed, err))
	}
	call.Retdata = retdata
	if contractclass.IsSierraClass(resolved.class) {
		call.GasConsumed = f.steps * 100
	}
	return call, nil
}

func (i *Invoker) classHashOf(s state.State, entryPoint *execution.ExecutionEntryPoint) (types.ClassHash, error) {
	if entryPoint.ClassHash != nil {
		return *entryPoint.ClassHash, nil
	}
	hash, err := s.GetClassHashAt(entryPoint.ContractAddress)
	if err != nil {
		return types.ClassHash{}, &stateError{err}
	}
	if hash.IsZero() {
		return types.ClassHash{}, fmt.Errorf("%w: %v", execution.ErrContractNotDeployed, entryPoint.ContractAddress)
	}
	return hash, nil
}

func (i *Invoker) resolve(s state.State, classHash types.ClassHash) (*resolvedClass, error) {
	if i.cache != nil {
		if cached, found := i.cache.Get(classHash); found {
			return cached.(*resolvedClass), nil
		}
	}
	class, err := s.GetContractClass(classHash)
	if err != nil {
		return nil, &stateError{err}
	}
	program, err := i.registry.Lookup(class.ProgramName())
	if err != nil {
		return nil, &stateError{err}
	}
	resolved := &resolvedClass{class: class, program: program}
	if i.cache != nil {
		i.cache.Add(classHash, resolved)
	}
	return resolved, nil
}

// entryPointFunc finds the implementation of the called entry point. Calls
// of unknown selectors go to the default entry point if the class has one.
func (c *resolvedClass) entryPointFunc(entryPoint *execution.ExecutionEntryPoint) (EntryPointFunc, error) {
	ep, found, err := contractclass.FindEntryPoint(c.class, entryPoint.EntryPointType, entryPoint.EntryPointSelector)
	if err != nil {
		return nil, fmt.Errorf("%w; %w", execution.ErrEntryPointNotFound, err)
	}
	if !found {
		ep, found, err = contractclass.FindEntryPoint(c.class, entryPoint.EntryPointType, starkhash.DefaultEntryPointSelector)
		if err != nil || !found {
			return nil, fmt.Errorf("%w: selector %v of type %v", execution.ErrEntryPointNotFound, entryPoint.EntryPointSelector, entryPoint.EntryPointType)
		}
	}
	fn, found := c.program[ep.Selector]
	if !found {
		return nil, fmt.Errorf("%w: program %q lacks selector %v", execution.ErrEntryPointNotFound, c.class.ProgramName(), ep.Selector)
	}
	return fn, nil
}
