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

package execution

import (
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/holiman/uint256"
)

// TransactionExecutionContext is the transaction data visible to executed
// code.
type TransactionExecutionContext struct {
	AccountContractAddress types.Address
	TransactionHash        felt.Felt
	Signature              []felt.Felt
	AccountTxFields        txcontext.AccountTxFields
	Nonce                  felt.Felt
	NSteps                 uint64
	Version                felt.Felt
	NSentMessages          uint64
}

// MaxFee returns the max fee of the transaction, zero if there are no fee
// fields.
func (c *TransactionExecutionContext) MaxFee() uint256.Int {
	if c.AccountTxFields == nil {
		return uint256.Int{}
	}
	return c.AccountTxFields.MaxFee()
}

// TransactionExecutionInfo is the reportable outcome of a transaction. A
// reverted transaction carries a RevertError instead of call traces, fee
// information is attached after the fee was charged.
type TransactionExecutionInfo struct {
	ValidateCallInfo    *CallInfo                  `json:"validate_call_info,omitempty"`
	CallInfo            *CallInfo                  `json:"call_info,omitempty"`
	RevertError         string                     `json:"revert_error,omitempty"`
	RevertCause         error                      `json:"-"`
	FeeTransferCallInfo *CallInfo                  `json:"fee_transfer_call_info,omitempty"`
	ActualFee           uint256.Int                `json:"actual_fee"`
	ActualResources     map[string]uint64          `json:"actual_resources"`
	TxType              *txcontext.TransactionType `json:"tx_type,omitempty"`
}

// NewTransactionExecutionInfoWithoutFeeInfo creates the record of an
// executed transaction before its fee was charged.
func NewTransactionExecutionInfoWithoutFeeInfo(
	validateInfo *CallInfo,
	callInfo *CallInfo,
	revertCause error,
	actualResources map[string]uint64,
	txType *txcontext.TransactionType,
) *TransactionExecutionInfo {
	info := &TransactionExecutionInfo{
		ValidateCallInfo: validateInfo,
		CallInfo:         callInfo,
		RevertCause:      revertCause,
		ActualResources:  actualResources,
		TxType:           txType,
	}
	if revertCause != nil {
		info.RevertError = revertCause.Error()
	}
	return info
}

// ToRevertError returns a copy of the record describing a reverted
// transaction: call traces and fee information are dropped, the consumed
// resources are kept.
func (i *TransactionExecutionInfo) ToRevertError(reason string, cause error) *TransactionExecutionInfo {
	return &TransactionExecutionInfo{
		RevertError:     reason,
		RevertCause:     cause,
		ActualResources: i.ActualResources,
		TxType:          i.TxType,
	}
}

// SetFeeInfo attaches the outcome of the fee charge.
func (i *TransactionExecutionInfo) SetFeeInfo(actualFee uint256.Int, feeTransferInfo *CallInfo) {
	i.ActualFee = actualFee
	i.FeeTransferCallInfo = feeTransferInfo
}

// IsReverted reports whether the transaction was reverted.
func (i *TransactionExecutionInfo) IsReverted() bool {
	return i.RevertError != ""
}

func (i *TransactionExecutionInfo) calls() []*CallInfo {
	var res []*CallInfo
	for _, call := range []*CallInfo{i.ValidateCallInfo, i.CallInfo, i.FeeTransferCallInfo} {
		if call != nil {
			res = append(res, call)
		}
	}
	return res
}

// GetSortedEvents returns the events of validation, execution and fee
// transfer, in this order.
func (i *TransactionExecutionInfo) GetSortedEvents() ([]Event, error) {
	var res []Event
	for _, call := range i.calls() {
		events, err := call.GetSortedEvents()
		if err != nil {
			return nil, err
		}
		res = append(res, events...)
	}
	return res, nil
}

// GetSortedL2ToL1Messages returns the messages of validation, execution and
// fee transfer, in this order.
func (i *TransactionExecutionInfo) GetSortedL2ToL1Messages() ([]L2ToL1Message, error) {
	var res []L2ToL1Message
	for _, call := range i.calls() {
		messages, err := call.GetSortedL2ToL1Messages()
		if err != nil {
			return nil, err
		}
		res = append(res, messages...)
	}
	return res, nil
}
