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

package fee

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// ErrFeeOverflow is returned if a fee does not fit into 128 bits.
var ErrFeeOverflow = errors.New("fee exceeds 128 bits")

// ErrActualFeeExceedsMaxFee matches every *ActualFeeExceedsMaxFeeError.
var ErrActualFeeExceedsMaxFee = errors.New("actual fee exceeds max fee")

type ActualFeeExceedsMaxFeeError struct {
	ActualFee uint256.Int
	MaxFee    uint256.Int
}

func (e *ActualFeeExceedsMaxFeeError) Error() string {
	return fmt.Sprintf("actual fee %v exceeds max fee %v", e.ActualFee.Dec(), e.MaxFee.Dec())
}

func (e *ActualFeeExceedsMaxFeeError) Unwrap() error {
	return ErrActualFeeExceedsMaxFee
}

// TypeOf returns the token a transaction with the given fee fields pays in.
func TypeOf(fields txcontext.AccountTxFields) txcontext.FeeType {
	if _, ok := fields.(*txcontext.CurrentAccountTxFields); ok {
		return txcontext.Strk
	}
	return txcontext.Eth
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// CalculateL1GasByCairoUsage converts the Cairo resources of a transaction
// into L1 gas. The most expensive resource according to the fee weights of
// the block determines the result.
func CalculateL1GasByCairoUsage(blockContext *txcontext.BlockContext, resources map[string]uint64) (decimal.Decimal, error) {
	res := decimal.Zero
	for name, usage := range resources {
		if name == txcontext.L1GasUsage {
			continue
		}
		weight, found := blockContext.CairoResourceFeeWeights[name]
		if !found {
			return decimal.Zero, fmt.Errorf("%w: no fee weight for resource %q", execution.ErrResourcesCalculation, name)
		}
		res = decimal.Max(res, weight.Mul(fromUint64(usage)))
	}
	return res, nil
}

// CalculateTxL1GasUsage returns the total L1 gas of a transaction, rounded up.
func CalculateTxL1GasUsage(resources map[string]uint64, blockContext *txcontext.BlockContext) (uint256.Int, error) {
	if len(resources) == 0 {
		return uint256.Int{}, fmt.Errorf("%w: no resources", execution.ErrResourcesCalculation)
	}
	cairoGas, err := CalculateL1GasByCairoUsage(blockContext, resources)
	if err != nil {
		return uint256.Int{}, err
	}
	total := fromUint64(resources[txcontext.L1GasUsage]).Add(cairoGas).Ceil()
	gas, overflow := uint256.FromBig(total.BigInt())
	if overflow {
		return uint256.Int{}, fmt.Errorf("%w: gas usage %v", ErrFeeOverflow, total)
	}
	return *gas, nil
}

// CalculateTxFee returns the fee of a transaction with the given resources,
// priced in the token of the fee type.
func CalculateTxFee(resources map[string]uint64, blockContext *txcontext.BlockContext, feeType txcontext.FeeType) (uint256.Int, error) {
	gas, err := CalculateTxL1GasUsage(resources, blockContext)
	if err != nil {
		return uint256.Int{}, err
	}
	price := blockContext.GasPrice(feeType)
	var fee uint256.Int
	if _, overflow := fee.MulOverflow(&gas, &price); overflow || fee.BitLen() > 128 {
		return uint256.Int{}, fmt.Errorf("%w: %v gas at price %v", ErrFeeOverflow, gas.Dec(), price.Dec())
	}
	return fee, nil
}

// ChargeFee computes the actual fee of a transaction and transfers it from
// the account to the sequencer. Nothing is charged if the max fee is zero.
// Except for version 0 the charged fee is capped at the max fee. The
// transfer runs on a transactional state applied to s only if it succeeds.
func ChargeFee(
	s state.State,
	resources map[string]uint64,
	blockContext *txcontext.BlockContext,
	maxFee uint256.Int,
	txContext *execution.TransactionExecutionContext,
	skipFeeTransfer bool,
	invoker execution.EntryPointInvoker,
) (*execution.CallInfo, uint256.Int, error) {
	if maxFee.IsZero() {
		return nil, uint256.Int{}, nil
	}
	feeType := TypeOf(txContext.AccountTxFields)
	actualFee, err := CalculateTxFee(resources, blockContext, feeType)
	if err != nil {
		return nil, uint256.Int{}, err
	}
	if !txContext.Version.IsZero() && actualFee.Gt(&maxFee) {
		actualFee = maxFee
	}
	if skipFeeTransfer {
		return nil, actualFee, nil
	}
	info, err := executeFeeTransfer(s, blockContext, txContext, feeType, actualFee, invoker)
	if err != nil {
		return nil, actualFee, err
	}
	return info, actualFee, nil
}

func executeFeeTransfer(
	s state.State,
	blockContext *txcontext.BlockContext,
	txContext *execution.TransactionExecutionContext,
	feeType txcontext.FeeType,
	actualFee uint256.Int,
	invoker execution.EntryPointInvoker,
) (*execution.CallInfo, error) {
	maxFee := txContext.MaxFee()
	if actualFee.Gt(&maxFee) {
		return nil, &ActualFeeExceedsMaxFeeError{ActualFee: actualFee, MaxFee: maxFee}
	}

	var low, high uint256.Int
	mask := new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)
	low.And(&actualFee, mask)
	high.Rsh(&actualFee, 128)
	calldata := []felt.Felt{
		blockContext.BlockInfo.SequencerAddress.Felt,
		felt.FromUint256(&low),
		felt.FromUint256(&high),
	}
	entryPoint := execution.NewExecutionEntryPoint(
		blockContext.FeeTokenAddress(feeType),
		calldata,
		starkhash.TransferSelector,
		txContext.AccountContractAddress,
		contractclass.External,
	)

	transferContext := *txContext
	transferContext.NSteps = blockContext.InvokeTxMaxNSteps
	overlay, err := s.CreateTransactional()
	if err != nil {
		return nil, err
	}
	result, err := invoker.Execute(entryPoint, overlay, blockContext, execution.NewResourcesManager(), &transferContext, blockContext.InvokeTxMaxNSteps)
	if err != nil {
		return nil, fmt.Errorf("fee transfer of %v failed; %w", actualFee.Dec(), err)
	}
	diff, err := state.StateDiffFromCachedState(overlay)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyStateUpdate(diff); err != nil {
		return nil, err
	}
	return result.CallInfo, nil
}
