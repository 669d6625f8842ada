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

package utils

import (
	"github.com/urfave/cli/v2"
)

// Command line options shared by the starkrun commands.
var (
	ChainFlag = cli.StringFlag{
		Name:  "chain",
		Usage: "network the transactions belong to (mainnet, sepolia, testnet, testnet2) or a raw chain id such as SN_MAIN",
		Value: "testnet",
	}
	StateDbFlag = cli.PathFlag{
		Name:  "state-db",
		Usage: "directory of the persistent state; the state is kept in memory if not set",
	}
	StateDbCacheFlag = cli.StringFlag{
		Name:  "state-db-cache",
		Usage: "block cache size of the persistent state, e.g. 64MB",
		Value: "8MB",
	}
	ClassCacheSizeFlag = cli.IntFlag{
		Name:  "class-cache-size",
		Usage: "number of contract classes kept in memory, 0 keeps all of them",
		Value: 0,
	}
	ProgramCacheSizeFlag = cli.IntFlag{
		Name:  "program-cache-size",
		Usage: "number of resolved contract programs kept by the entry point invoker",
		Value: 128,
	}
	SkipValidateFlag = cli.BoolFlag{
		Name:  "skip-validate",
		Usage: "do not run the validation entry points of accounts",
	}
	SkipExecuteFlag = cli.BoolFlag{
		Name:  "skip-execute",
		Usage: "do not run constructors and called entry points",
	}
	SkipFeeTransferFlag = cli.BoolFlag{
		Name:  "skip-fee-transfer",
		Usage: "compute fees without transferring them to the sequencer",
	}
	IgnoreMaxFeeFlag = cli.BoolFlag{
		Name:  "ignore-max-fee",
		Usage: "raise the max fee of every transaction to the largest possible value",
	}
	SkipNonceCheckFlag = cli.BoolFlag{
		Name:  "skip-nonce-check",
		Usage: "accept transactions with any nonce",
	}
	IncrementLegacyNonceFlag = cli.BoolFlag{
		Name:  "increment-legacy-nonce",
		Usage: "increment the account nonce of version 0 transactions",
	}
	StateDbLoggingFlag = cli.BoolFlag{
		Name:  "state-db-logging",
		Usage: "log every state operation of the executed transactions at debug level",
	}
	TraceFileFlag = cli.PathFlag{
		Name:  "trace-file",
		Usage: "write the execution info of all transactions as gzip compressed json into this file",
	}
	ContinueOnFailureFlag = cli.BoolFlag{
		Name:  "continue-on-failure",
		Usage: "continue the run after a transaction failed",
	}
	MaxNumErrorsFlag = cli.IntFlag{
		Name:  "max-errors",
		Usage: "maximum number of failed transactions tolerated with --continue-on-failure, 0 is unlimited",
		Value: 50,
	}
	ErrorLoggingFlag = cli.PathFlag{
		Name:  "err-logging",
		Usage: "file into which all failures of transactions are recorded",
	}
	NoHeartbeatLoggingFlag = cli.BoolFlag{
		Name:  "no-heartbeat-logging",
		Usage: "disables the periodic progress reports",
	}
)
