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

	tracelogger "github.com/Fantom-foundation/Starkrun/executor/extension/logger"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/urfave/cli/v2"
)

var TraceSummaryCmd = cli.Command{
	Action:    TraceSummary,
	Name:      "trace",
	Usage:     "Summarizes a trace file written by the run command",
	ArgsUsage: "<trace-file>",
}

// TraceSummary prints the outcome of every transaction recorded in a trace file.
func TraceSummary(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("starkrun trace command requires exactly 1 argument")
	}

	records, err := tracelogger.ReadTraceFile(ctx.Args().First())
	if err != nil {
		return err
	}

	return printReport(ctx.App.Writer, outcomesFromTrace(records))
}

func outcomesFromTrace(records []tracelogger.TraceRecord) []outcome {
	res := make([]outcome, 0, len(records))
	for _, record := range records {
		o := outcome{
			block:       record.Block,
			transaction: record.Transaction,
			txType:      record.Type,
			hash:        record.Hash.String(),
			status:      statusFailed,
		}
		if info := record.Info; info != nil {
			o.status = statusSucceeded
			if info.RevertError != "" {
				o.status = statusReverted
				o.reason = info.RevertError
			}
			o.fee = info.ActualFee
			o.steps = info.ActualResources[txcontext.NSteps]
		}
		res = append(res, o)
	}
	return res
}
