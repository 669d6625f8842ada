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

package logger

//go:generate mockgen -source logger.go -destination logger_mocks.go -package logger

import (
	"io"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the executed transactions (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

const defaultLogFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{module}%{color:reset}: %{message}"

// Logger is the logging interface of all Starkrun components. It is
// satisfied by *logging.Logger of op/go-logging.
//
// Levels are used as follows:
//   - Critical and Error report failed runs and failed transactions,
//   - Warning reports reverted transactions and fee transfers that failed,
//   - Notice reports milestones of a run (state opened, final summary),
//   - Info reports periodic progress,
//   - Debug reports per-transaction lifecycle decisions and state calls.
//
// Fatal and Panic end the program and are reserved for unrecoverable
// setup errors.
type Logger interface {
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})

	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Notice(args ...interface{})
	Noticef(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
}

// NewLogger provides a new instance of the Logger writing to stdout.
func NewLogger(level string, module string) *logging.Logger {
	return NewLoggerTo(os.Stdout, level, module)
}

// NewLoggerTo provides a new instance of the Logger writing to out. Unknown
// levels fall back to INFO.
func NewLoggerTo(out io.Writer, level string, module string) *logging.Logger {
	backend := logging.NewLogBackend(out, "", 0)

	fm := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, fm)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(lvl, "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(module)
}

// ParseTime splits a duration, rounded to seconds, into hours, minutes and
// seconds.
func ParseTime(elapsed time.Duration) (hours, minutes, seconds uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	return total / 3600, total / 60 % 60, total % 60
}
