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
	"io"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const feeTokenDecimals = 18

type outcomeStatus string

const (
	statusSucceeded outcomeStatus = "SUCCEEDED"
	statusReverted  outcomeStatus = "REVERTED"
	statusFailed    outcomeStatus = "FAILED"
)

// outcome is the reportable result of one transaction.
type outcome struct {
	block       int
	transaction int
	txType      txcontext.TransactionType
	hash        string
	status      outcomeStatus
	fee         uint256.Int
	steps       uint64
	reason      string
}

func newOutcomeCollector() *outcomeCollector {
	return &outcomeCollector{}
}

// outcomeCollector records the outcome of every processed transaction.
type outcomeCollector struct {
	extension.NilExtension
	outcomes []outcome
}

func (c *outcomeCollector) PostTransaction(state executor.State, ctx *executor.Context) error {
	res := outcome{
		block:       state.Block,
		transaction: state.Transaction,
		status:      statusFailed,
	}
	if state.Data != nil {
		res.txType = state.Data.Type()
		res.hash = state.Data.Hash().String()
	}
	if info := ctx.ExecutionInfo; info != nil {
		res.status = statusSucceeded
		if info.RevertError != "" {
			res.status = statusReverted
			res.reason = info.RevertError
		}
		res.fee = info.ActualFee
		res.steps = info.ActualResources[txcontext.NSteps]
	}
	c.outcomes = append(c.outcomes, res)
	return nil
}

// printReport renders the outcomes as a table followed by a summary.
func printReport(w io.Writer, outcomes []outcome) error {
	p := message.NewPrinter(language.English)
	bold := color.New(color.Bold).SprintfFunc()

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Block", "Tx", "Type", "Hash", "Status", "Fee", "Steps", "Revert reason"})
	tbl.SetBorder(true)
	tbl.SetAutoWrapText(false)

	var (
		totalFee   uint256.Int
		totalSteps uint64
		counts     = map[outcomeStatus]int{}
	)
	for _, o := range outcomes {
		tbl.Append([]string{
			fmt.Sprint(o.block),
			fmt.Sprint(o.transaction),
			o.txType.String(),
			shortHash(o.hash),
			colorStatus(o.status),
			formatFee(&o.fee),
			p.Sprintf("%d", o.steps),
			o.reason,
		})
		totalFee.Add(&totalFee, &o.fee)
		totalSteps += o.steps
		counts[o.status]++
	}
	tbl.Render()

	_, err := fmt.Fprintf(w, "Transactions:\t%s (%d succeeded, %d reverted, %d failed)\nTotal fee:\t%s ETH\nTotal steps:\t%s\n",
		bold("%d", len(outcomes)),
		counts[statusSucceeded], counts[statusReverted], counts[statusFailed],
		bold(formatFee(&totalFee)),
		bold(p.Sprintf("%d", totalSteps)),
	)
	return err
}

func colorStatus(status outcomeStatus) string {
	switch status {
	case statusSucceeded:
		return color.GreenString(string(status))
	case statusReverted:
		return color.YellowString(string(status))
	}
	return color.RedString(string(status))
}

// formatFee converts a fee in wei into ETH.
func formatFee(fee *uint256.Int) string {
	return decimal.NewFromBigInt(fee.ToBig(), -feeTokenDecimals).String()
}

func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:8] + ".." + hash[len(hash)-4:]
}
