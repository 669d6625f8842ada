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

package executor

//go:generate mockgen -source executor.go -destination executor_mocks.go -package executor

import (
	"errors"

	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/transaction"
	"github.com/Fantom-foundation/Starkrun/txcontext"
)

// Executor drives the transactions of a block range through a Processor
// and notifies extensions at each hook-in point:
//
//	PreRun()
//	for each block {
//	   PreBlock()
//	   for each transaction {
//	       PreTransaction()
//	       Processor.Process(transaction)
//	       PostTransaction()
//	   }
//	   PostBlock()
//	}
//	PostRun()
//
// Transactions run one at a time against the single outer state of the run,
// so every transaction observes the changes committed by its predecessors.
type Executor interface {
	// Run executes the blocks [From,To) of params. Pre events reach the
	// extensions in list order and post events in reverse list order. An
	// event is delivered to all extensions even if one of them fails; the
	// run then stops and all errors are joined. PostRun is delivered in any
	// case.
	Run(params Params, processor Processor, extensions []Extension) error
}

// NewExecutor creates a new executor based on the given transaction provider.
func NewExecutor(provider Provider) Executor {
	return &executor{provider}
}

// Params summarizes input parameters for a run of the executor.
type Params struct {
	// From is the begin of the range of blocks to be processed (inclusive).
	From int
	// To is the end of the range of blocks to be processed (exclusive).
	To int
	// State is an optional outer state to be made available to the
	// processor and extensions during execution. If it is nil, an extension
	// is expected to provide it during PreRun.
	State *state.CachedState
	// BlockContext is the chain context transactions are executed in.
	// Extensions may update its block information on every PreBlock.
	BlockContext *txcontext.BlockContext
}

// Processor executes a single transaction.
type Processor interface {
	Process(State, *Context) error
}

// Extension observes or alters a run at its hook-in points.
type Extension interface {
	// PreRun is called once before anything else, even for an empty range.
	// The state holds the first block of the range.
	PreRun(State, *Context) error

	// PostRun is called once at the end of every run. After a successful
	// run the state holds the first block not executed; after an abort it
	// holds the last attempted transaction and err the cause.
	PostRun(State, *Context, error) error

	// PreBlock is called before the first transaction of a block.
	PreBlock(State, *Context) error

	// PostBlock is called after the last transaction of a block; the state
	// holds that transaction.
	PostBlock(State, *Context) error

	// PreTransaction is called before a transaction is processed.
	PreTransaction(State, *Context) error

	// PostTransaction is called after a transaction is processed with the
	// state of the preceding PreTransaction. Context.ExecutionInfo holds the
	// outcome.
	PostTransaction(State, *Context) error
}

// State is the position of a run passed to processors and extensions.
type State struct {
	Block int
	// Transaction is the index within Block. It is not set for PreRun and
	// PreBlock.
	Transaction int
	// Data is set for PreTransaction, Process and PostTransaction only.
	Data transaction.Transaction
}

// Context holds the mutable data of a run shared by the processor and the
// extensions.
type Context struct {
	// State is the outer state all transactions of the run are executed
	// against. Extensions may replace it between blocks.
	State *state.CachedState

	// BlockContext is the chain context of the current block.
	BlockContext *txcontext.BlockContext

	// ExecutionInfo is the outcome of the last processed transaction. It is
	// nil if the transaction failed without producing an outcome.
	ExecutionInfo *execution.TransactionExecutionInfo

	// ErrorInput is used to send tolerated failures of transactions to the
	// error logger. It is nil if no error logger is registered.
	ErrorInput chan error
}

type executor struct {
	provider Provider
}

func (e *executor) Run(params Params, processor Processor, extensions []Extension) (err error) {
	state := State{}
	context := Context{State: params.State, BlockContext: params.BlockContext}

	defer func() {
		// Skip PostRun actions if a panic occurred. In such a case there is no guarantee
		// on the state of anything, and PostRun operations may deadlock or cause damage.
		if r := recover(); r != nil {
			panic(r) // just forward
		}
		err = errors.Join(
			err,
			signalPostRun(state, &context, err, extensions),
		)
	}()

	state.Block = params.From
	if err := signalPreRun(state, &context, extensions); err != nil {
		return err
	}

	return e.runSequential(params, processor, extensions, &state, &context)
}

func (e *executor) runSequential(params Params, processor Processor, extensions []Extension, state *State, context *Context) error {
	first := true
	err := e.provider.Run(params.From, params.To, func(tx TransactionInfo) error {
		if first {
			state.Block = tx.Block
			if err := signalPreBlock(*state, context, extensions); err != nil {
				return err
			}
			first = false
		} else if state.Block != tx.Block {
			if err := signalPostBlock(*state, context, extensions); err != nil {
				return err
			}
			state.Block = tx.Block
			if err := signalPreBlock(*state, context, extensions); err != nil {
				return err
			}
		}
		state.Transaction = tx.Transaction
		return runTransaction(*state, context, tx.Data, processor, extensions)
	})
	if err != nil {
		return err
	}

	// Finish final block.
	if !first {
		if err := signalPostBlock(*state, context, extensions); err != nil {
			return err
		}
		state.Block = params.To
	}

	return nil
}

func runTransaction(state State, context *Context, tx transaction.Transaction, processor Processor, extensions []Extension) error {
	state.Data = tx
	context.ExecutionInfo = nil
	if err := signalPreTransaction(state, context, extensions); err != nil {
		return err
	}
	if err := processor.Process(state, context); err != nil {
		return err
	}
	if err := signalPostTransaction(state, context, extensions); err != nil {
		return err
	}
	return nil
}

func signalPreRun(state State, context *Context, extensions []Extension) error {
	return forEachForward(extensions, func(extension Extension) error {
		return extension.PreRun(state, context)
	})
}

func signalPostRun(state State, context *Context, err error, extensions []Extension) error {
	return forEachBackward(extensions, func(extension Extension) error {
		return extension.PostRun(state, context, err)
	})
}

func signalPreBlock(state State, context *Context, extensions []Extension) error {
	return forEachForward(extensions, func(extension Extension) error {
		return extension.PreBlock(state, context)
	})
}

func signalPostBlock(state State, context *Context, extensions []Extension) error {
	return forEachBackward(extensions, func(extension Extension) error {
		return extension.PostBlock(state, context)
	})
}

func signalPreTransaction(state State, context *Context, extensions []Extension) error {
	return forEachForward(extensions, func(extension Extension) error {
		return extension.PreTransaction(state, context)
	})
}

func signalPostTransaction(state State, context *Context, extensions []Extension) error {
	return forEachBackward(extensions, func(extension Extension) error {
		return extension.PostTransaction(state, context)
	})
}

func forEachForward(extensions []Extension, op func(extension Extension) error) error {
	errs := []error{}
	for _, extension := range extensions {
		if err := op(extension); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func forEachBackward(extensions []Extension, op func(extension Extension) error) error {
	errs := []error{}
	for i := len(extensions) - 1; i >= 0; i-- {
		if err := op(extensions[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
