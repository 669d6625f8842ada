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

package main

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	tracelogger "github.com/Fantom-foundation/Starkrun/executor/extension/logger"
	"github.com/Fantom-foundation/Starkrun/executor/extension/statedb"
	"github.com/Fantom-foundation/Starkrun/executor/extension/tracker"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/utils"
	"github.com/Fantom-foundation/Starkrun/vm"
	"github.com/urfave/cli/v2"
)

var RunScenarioCmd = cli.Command{
	Action:    RunScenario,
	Name:      "run",
	Usage:     "Executes the transactions of a scenario file block by block",
	ArgsUsage: "<scenario.json>",
	Flags: []cli.Flag{
		// StateDb
		&utils.StateDbFlag,
		&utils.StateDbCacheFlag,
		&utils.ClassCacheSizeFlag,
		&utils.StateDbLoggingFlag,

		// VM
		&utils.ProgramCacheSizeFlag,
		&utils.IncrementLegacyNonceFlag,

		// Simulation
		&utils.SkipValidateFlag,
		&utils.SkipExecuteFlag,
		&utils.SkipFeeTransferFlag,
		&utils.IgnoreMaxFeeFlag,
		&utils.SkipNonceCheckFlag,

		// Utils
		&utils.ChainFlag,
		&utils.ContinueOnFailureFlag,
		&utils.MaxNumErrorsFlag,
		&utils.ErrorLoggingFlag,
		&utils.TraceFileFlag,
		&logger.LogLevelFlag,
		&utils.NoHeartbeatLoggingFlag,
	},
	Description: `
The starkrun run command requires one argument: <scenario.json>

The scenario declares classes and genesis contracts, which are written into
the state before the first block, and lists the blocks of transactions to
be executed.`,
}

// RunScenario executes all blocks of the scenario given as argument.
func RunScenario(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("starkrun run command requires exactly 1 argument")
	}

	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}

	scenario, err := executor.LoadScenario(ctx.Args().First())
	if err != nil {
		return err
	}

	collector := newOutcomeCollector()
	if err := runScenario(cfg, scenario, []executor.Extension{collector}); err != nil {
		return err
	}

	return printReport(ctx.App.Writer, collector.outcomes)
}

func runScenario(cfg *utils.Config, scenario *executor.Scenario, extra []executor.Extension) error {
	invoker, err := vm.NewInvoker(vm.NewDefaultRegistry(), vm.Config{ProgramCacheSize: cfg.ProgramCacheSize})
	if err != nil {
		return err
	}

	// order of extensionList has to be maintained
	var extensionList = []executor.Extension{
		statedb.MakeStateDbManager(cfg),
		statedb.MakeGenesisPrimer(cfg, scenario),
		extension.MakeBlockInfoUpdater(scenario),
		tracker.MakeProgressLogger(cfg, 0),
		tracker.MakeRevertLogger(cfg),
		tracelogger.MakeTraceLogger(cfg),
	}
	if cfg.ContinueOnFailure {
		extensionList = append(extensionList, tracker.MakeErrorLogger(cfg))
	}
	extensionList = append(extensionList, extra...)

	return executor.NewExecutor(executor.NewScenarioProvider(scenario, cfg.ChainID)).Run(
		executor.Params{
			From:         0,
			To:           len(scenario.Blocks),
			BlockContext: cfg.BlockContext(),
		},
		executor.MakeTxProcessor(cfg, invoker),
		extensionList,
	)
}
