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
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/utils"
)

const errorInputBufferSize = 10

type errorLogger struct {
	extension.NilExtension
	cfg    *utils.Config
	file   *os.File
	log    logger.Logger
	wg     *sync.WaitGroup
	errors []error
}

// MakeErrorLogger creates an extension collecting the failed transactions
// the processor tolerates. Failures are logged and, if configured, written
// to a file. PostRun reports all collected failures as one error.
func MakeErrorLogger(cfg *utils.Config) executor.Extension {
	return makeErrorLogger(cfg, logger.NewLogger(cfg.LogLevel, "Error-Logger"))
}

func makeErrorLogger(cfg *utils.Config, log logger.Logger) *errorLogger {
	return &errorLogger{
		cfg: cfg,
		log: log,
		wg:  new(sync.WaitGroup),
	}
}

func (l *errorLogger) PreRun(_ executor.State, ctx *executor.Context) error {
	ctx.ErrorInput = make(chan error, errorInputBufferSize)

	l.wg.Add(1)
	go l.doLogging(ctx.ErrorInput)

	if l.cfg.ErrorLogging == "" {
		return nil
	}

	l.log.Noticef("Creating log-file %v in which any processing error will be recorded.", l.cfg.ErrorLogging)

	var err error
	l.file, err = os.Create(l.cfg.ErrorLogging)
	if err != nil {
		return fmt.Errorf("cannot create log file %v; %w", l.cfg.ErrorLogging, err)
	}

	return nil
}

// PostRun closes the file and logging thread.
func (l *errorLogger) PostRun(_ executor.State, ctx *executor.Context, _ error) error {
	close(ctx.ErrorInput)
	l.wg.Wait()
	ctx.ErrorInput = nil

	if l.file != nil {
		err := l.file.Close()
		if err != nil {
			l.log.Errorf("cannot close log-file; %v", err)
		}
	}

	if len(l.errors) != 0 {
		return fmt.Errorf("total %v errors occurred: %w", len(l.errors), errors.Join(l.errors...))
	}

	return nil
}

func (l *errorLogger) doLogging(input chan error) {
	defer l.wg.Done()

	var numberOfErrors int
	for in := range input {
		numberOfErrors++
		l.log.Errorf("New error: \n\t%v", in)
		l.log.Warningf("Total number of errors %v", numberOfErrors)
		if l.file != nil {
			_, err := l.file.WriteString(in.Error() + "\n")
			if err != nil {
				l.log.Errorf("cannot write into log-file; %v", err)
			}
		}
		l.errors = append(l.errors, in)
	}
}
