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

package tracker

import (
	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/utils"
)

const revertReportFormat = "Block %d, transaction %d (%v %v) reverted: %v"

// MakeRevertLogger creates an extension reporting every reverted
// transaction. Reverted transactions are valid and charged, so they are
// never reported as errors.
func MakeRevertLogger(cfg *utils.Config) executor.Extension {
	return makeRevertLogger(logger.NewLogger(cfg.LogLevel, "Revert-Logger"))
}

func makeRevertLogger(log logger.Logger) *revertLogger {
	return &revertLogger{log: log}
}

type revertLogger struct {
	extension.NilExtension
	log logger.Logger
}

func (l *revertLogger) PostTransaction(state executor.State, ctx *executor.Context) error {
	info := ctx.ExecutionInfo
	if info == nil || info.RevertError == "" || state.Data == nil {
		return nil
	}
	l.log.Warningf(revertReportFormat, state.Block, state.Transaction, state.Data.Type(), state.Data.Hash(), info.RevertError)
	return nil
}
