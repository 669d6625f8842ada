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

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/utils"
	"github.com/klauspost/compress/gzip"
)

// TraceRecord is one line of a trace file.
type TraceRecord struct {
	Block       int                                 `json:"block"`
	Transaction int                                 `json:"transaction"`
	Type        txcontext.TransactionType           `json:"type"`
	Hash        felt.Felt                           `json:"hash"`
	Info        *execution.TransactionExecutionInfo `json:"execution_info,omitempty"`
}

// MakeTraceLogger creates an extension writing the outcome of every
// transaction as a JSON line into the configured trace file. Files ending
// in .gz are compressed.
func MakeTraceLogger(cfg *utils.Config) executor.Extension {
	if cfg.TraceFile == "" {
		return extension.NilExtension{}
	}
	return makeTraceLogger(cfg, logger.NewLogger(cfg.LogLevel, "Trace-Logger"))
}

func makeTraceLogger(cfg *utils.Config, log logger.Logger) *traceLogger {
	return &traceLogger{
		cfg: cfg,
		log: log,
	}
}

type traceLogger struct {
	extension.NilExtension
	cfg     *utils.Config
	log     logger.Logger
	file    *os.File
	zip     *gzip.Writer
	out     *bufio.Writer
	encoder *json.Encoder
}

func (l *traceLogger) PreRun(executor.State, *executor.Context) error {
	var err error
	l.file, err = os.Create(l.cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("cannot create trace file %v; %w", l.cfg.TraceFile, err)
	}

	var w io.Writer = l.file
	if isCompressed(l.cfg.TraceFile) {
		l.zip = gzip.NewWriter(l.file)
		w = l.zip
	}
	l.out = bufio.NewWriter(w)
	l.encoder = json.NewEncoder(l.out)

	l.log.Noticef("Writing transaction traces to %v", l.cfg.TraceFile)
	return nil
}

func (l *traceLogger) PostTransaction(state executor.State, ctx *executor.Context) error {
	if state.Data == nil {
		return nil
	}
	return l.encoder.Encode(TraceRecord{
		Block:       state.Block,
		Transaction: state.Transaction,
		Type:        state.Data.Type(),
		Hash:        state.Data.Hash(),
		Info:        ctx.ExecutionInfo,
	})
}

// PostRun flushes all buffered records and closes the trace file.
func (l *traceLogger) PostRun(executor.State, *executor.Context, error) error {
	if l.file == nil {
		return nil
	}
	defer func() {
		l.file = nil
	}()

	if err := l.out.Flush(); err != nil {
		l.file.Close()
		return fmt.Errorf("cannot flush trace file; %w", err)
	}
	if l.zip != nil {
		if err := l.zip.Close(); err != nil {
			l.file.Close()
			return fmt.Errorf("cannot finish trace file; %w", err)
		}
	}
	return l.file.Close()
}

// ReadTraceFile reads all records of a trace file written by the trace
// logger.
func ReadTraceFile(path string) ([]TraceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if isCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		in = zr
	}

	var records []TraceRecord
	decoder := json.NewDecoder(in)
	for {
		var record TraceRecord
		err := decoder.Decode(&record)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cannot decode trace record %d; %w", len(records), err)
		}
		records = append(records, record)
	}
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}
