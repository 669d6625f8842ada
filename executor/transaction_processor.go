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

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/state/proxy"
	"github.com/Fantom-foundation/Starkrun/utils"
)

// MakeTxProcessor creates an executor.Processor executing each transaction
// against the outer state of the run with the given entry point invoker.
func MakeTxProcessor(cfg *utils.Config, invoker execution.EntryPointInvoker) *TxProcessor {
	return &TxProcessor{
		cfg:     cfg,
		invoker: invoker,
		log:     logger.NewLogger(cfg.LogLevel, "TxProcessor"),
		dbLog:   logger.NewLogger(cfg.LogLevel, "State-Logger"),
	}
}

type TxProcessor struct {
	cfg       *utils.Config
	invoker   execution.EntryPointInvoker
	numErrors int
	log       logger.Logger
	dbLog     logger.Logger
}

// Process executes the transaction of the given state. Reverted
// transactions are successful executions, failed ones are fatal unless the
// run continues on failures.
func (p *TxProcessor) Process(st State, ctx *Context) error {
	tx := st.Data
	if p.cfg.IsSimulation() {
		tx = tx.CreateForSimulation(p.cfg.SimulationFlags())
	}

	var db state.State = ctx.State
	if p.cfg.StateDbLogging {
		db = proxy.NewLoggerProxy(db, p.dbLog)
	}

	info, err := tx.Execute(db, ctx.BlockContext, p.invoker)
	ctx.ExecutionInfo = info
	if err == nil {
		return nil
	}

	err = fmt.Errorf("block %d, transaction %d (%v %v) failed; %w", st.Block, st.Transaction, tx.Type(), tx.Hash(), err)
	if ctx.ErrorInput == nil || p.isErrFatal() {
		return err
	}

	ctx.ErrorInput <- err
	return nil
}

func (p *TxProcessor) isErrFatal() bool {
	if !p.cfg.ContinueOnFailure {
		return true
	}

	if p.cfg.MaxNumErrors <= 0 {
		return false
	}

	if p.numErrors < p.cfg.MaxNumErrors {
		p.numErrors++
		return false
	}

	p.log.Errorf("maximum number of errors (%v) reached", p.cfg.MaxNumErrors)
	return true
}
