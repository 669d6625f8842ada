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
	"sync"
	"time"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/utils"
	"github.com/holiman/uint256"
)

const (
	ProgressLoggerDefaultReportFrequency = 15 * time.Second // how often will ticker trigger
	progressLoggerReportFormat           = "Elapsed time: %v; current block %d; last interval rate ~%.2f Tx/s, ~%.2f MSteps/s; reverted %d"
	finalSummaryProgressReportFormat     = "Total elapsed time: %d:%02d:%02d; last block %d; %d transactions, %d reverted; total rate ~%.2f Tx/s, ~%.2f MSteps/s; fees %v"
)

// MakeProgressLogger creates progress logger. It logs progress about processor depending on reportFrequency.
// If reportFrequency is 0, it is set to ProgressLoggerDefaultReportFrequency.
func MakeProgressLogger(cfg *utils.Config, reportFrequency time.Duration) executor.Extension {
	if cfg.NoHeartbeatLogging {
		return extension.NilExtension{}
	}

	if reportFrequency <= 0 {
		reportFrequency = ProgressLoggerDefaultReportFrequency
	}

	return makeProgressLogger(reportFrequency, logger.NewLogger(cfg.LogLevel, "Progress-Logger"))
}

func makeProgressLogger(reportFrequency time.Duration, logger logger.Logger) *progressLogger {
	return &progressLogger{
		log:             logger,
		inputCh:         make(chan progressInfo, 10),
		wg:              new(sync.WaitGroup),
		reportFrequency: reportFrequency,
	}
}

// progressLogger logs human-readable information about progress
// in "heartbeat" depending on reportFrequency.
type progressLogger struct {
	extension.NilExtension
	log             logger.Logger
	inputCh         chan progressInfo
	wg              *sync.WaitGroup
	reportFrequency time.Duration
}

// progressInfo is the part of a transaction outcome the report goroutine needs.
type progressInfo struct {
	block    int
	steps    uint64
	reverted bool
	fee      uint256.Int
}

// PreRun starts the report goroutine
func (l *progressLogger) PreRun(executor.State, *executor.Context) error {
	l.wg.Add(1)

	// pass the value for thread safety
	go l.startReport(l.reportFrequency)
	return nil
}

// PostRun gracefully closes the Extension and awaits the report goroutine correct closure.
func (l *progressLogger) PostRun(executor.State, *executor.Context, error) error {
	close(l.inputCh)
	l.wg.Wait()

	return nil
}

func (l *progressLogger) PostTransaction(state executor.State, ctx *executor.Context) error {
	in := progressInfo{block: state.Block}
	if info := ctx.ExecutionInfo; info != nil {
		in.steps = info.ActualResources[txcontext.NSteps]
		in.reverted = info.RevertError != ""
		in.fee = info.ActualFee
	}
	l.inputCh <- in
	return nil
}

// startReport runs in own goroutine. It accepts data from Executor from PostTransaction func.
// It reports current progress everytime we hit the ticker with reportFrequency.
func (l *progressLogger) startReport(reportFrequency time.Duration) {
	defer l.wg.Done()

	var (
		currentBlock                     int
		totalTx, currentIntervalTx       uint64
		totalSteps, currentIntervalSteps uint64
		totalReverted                    uint64
		totalFee                         uint256.Int
	)

	start := time.Now()
	lastReport := time.Now()
	ticker := time.NewTicker(reportFrequency)
	defer ticker.Stop()

	defer func() {
		elapsed := time.Since(start)
		txRate := float64(totalTx) / elapsed.Seconds()
		stepRate := float64(totalSteps) / elapsed.Seconds()

		hours, minutes, seconds := logger.ParseTime(elapsed)

		l.log.Noticef(finalSummaryProgressReportFormat, hours, minutes, seconds, currentBlock, totalTx, totalReverted, txRate, stepRate/1e6, totalFee.Dec())
	}()

	for {
		select {
		case in, ok := <-l.inputCh:
			if !ok {
				return
			}

			if in.block > currentBlock {
				currentBlock = in.block
			}

			currentIntervalTx++
			totalTx++
			currentIntervalSteps += in.steps
			totalSteps += in.steps
			if in.reverted {
				totalReverted++
			}
			totalFee.Add(&totalFee, &in.fee)

		case now := <-ticker.C:
			// skip if no data are present
			if currentIntervalTx == 0 {
				continue
			}
			elapsed := now.Sub(start)
			txRate := float64(currentIntervalTx) / now.Sub(lastReport).Seconds()
			stepRate := float64(currentIntervalSteps) / now.Sub(lastReport).Seconds()

			l.log.Infof(progressLoggerReportFormat, elapsed.Round(1*time.Second), currentBlock, txRate, stepRate/1e6, totalReverted)

			lastReport = now

			currentIntervalTx = 0
			currentIntervalSteps = 0
		}
	}
}
