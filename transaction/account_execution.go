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

package transaction

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/execution"
	"github.com/Fantom-foundation/Starkrun/fee"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/holiman/uint256"
)

// accountTx holds the fields shared by all account transactions.
type accountTx struct {
	version   felt.Felt
	nonce     felt.Felt
	fields    txcontext.AccountTxFields
	hash      felt.Felt
	signature []felt.Felt
	flags     SimulationFlags
}

func (t *accountTx) Hash() felt.Felt {
	return t.hash
}

func (t *accountTx) Version() felt.Felt {
	return t.version
}

func (t *accountTx) Nonce() felt.Felt {
	return t.nonce
}

func (t *accountTx) Signature() []felt.Felt {
	return t.signature
}

// MaxFee returns the fee bound of the transaction.
func (t *accountTx) MaxFee() uint256.Int {
	return t.fields.MaxFee()
}

func (t *accountTx) feeType() txcontext.FeeType {
	return fee.TypeOf(t.fields)
}

func (t *accountTx) executionContext(sender types.Address, nSteps uint64) *execution.TransactionExecutionContext {
	return &execution.TransactionExecutionContext{
		AccountContractAddress: sender,
		TransactionHash:        t.hash,
		Signature:              t.signature,
		AccountTxFields:        t.fields,
		Nonce:                  t.nonce,
		NSteps:                 nSteps,
		Version:                t.version,
	}
}

// forSimulation returns a copy with the given flags. Ignoring the max fee
// replaces the fee bounds by the largest representable ones.
func (t accountTx) forSimulation(flags SimulationFlags) accountTx {
	t.flags = flags
	t.fields = t.fields.Clone()
	if flags.IgnoreMaxFee {
		if current, ok := t.fields.(*txcontext.CurrentAccountTxFields); ok {
			current.L1ResourceBounds = &txcontext.ResourceBounds{
				MaxAmount:       ^uint64(0),
				MaxPricePerUnit: txcontext.MaxUint128,
			}
		} else {
			t.fields = &txcontext.DeprecatedAccountTxFields{MaxFeeAmount: txcontext.MaxUint128}
		}
	}
	return t
}

// applied is the outcome of the kind specific part of a transaction.
type applied struct {
	validateInfo *execution.CallInfo
	callInfo     *execution.CallInfo
	// calls lists the executed calls in execution order.
	calls []*execution.CallInfo
}

// lifecycle describes how one kind of account transaction runs through the
// shared execution protocol.
type lifecycle struct {
	txType            txcontext.TransactionType
	supportedVersions []uint64
	sender            types.Address
	// estimatedSteps and estimatedChanges price the minimal fee.
	estimatedSteps   uint64
	estimatedChanges state.StateChangesCount
	// apply runs the kind specific logic on the transactional state. Errors
	// accepted by isRevert turn the transaction into a reverted one.
	apply func(s *state.CachedState, blockContext *txcontext.BlockContext, resources *execution.ResourcesManager, invoker execution.EntryPointInvoker) (applied, error)
}

// isRevert reports whether err is a failure of the executed code, which
// reverts the transaction but does not prevent charging its fee.
func isRevert(err error) bool {
	return execution.IsExecutionError(err) ||
		errors.Is(err, ErrInvalidContractCall) ||
		errors.Is(err, ErrWrongValidateRetdata)
}

func (t *accountTx) execute(
	lc lifecycle,
	s state.State,
	blockContext *txcontext.BlockContext,
	invoker execution.EntryPointInvoker,
) (*execution.TransactionExecutionInfo, error) {
	if !isSupportedVersion(t.version, lc.supportedVersions) {
		return nil, &UnsupportedTxVersionError{TxType: lc.txType.String(), Version: t.version, Supported: lc.supportedVersions}
	}
	if err := t.handleNonce(s, blockContext, lc.sender); err != nil {
		return nil, err
	}
	if !t.flags.SkipFeeTransfer {
		if err := t.checkFeeBalance(s, blockContext, lc); err != nil {
			return nil, err
		}
	}

	overlay, err := s.CreateTransactional()
	if err != nil {
		return nil, err
	}
	resources := execution.NewResourcesManager()
	res, err := lc.apply(overlay, blockContext, resources, invoker)
	var revertCause error
	if err != nil {
		if !isRevert(err) {
			return nil, err
		}
		revertCause = err
	}

	feeTokenAndSender := &state.FeeTokenAndSender{
		FeeToken: blockContext.FeeTokenAddress(t.feeType()),
		Sender:   lc.sender,
	}
	changesSource := overlay
	if revertCause != nil {
		// Writes of a reverted transaction are not published, only the fee
		// transfer is.
		if changesSource, err = s.CreateTransactional(); err != nil {
			return nil, err
		}
	}
	changes, err := changesSource.CountActualStateChanges(feeTokenAndSender)
	if err != nil {
		return nil, err
	}
	actualResources, err := execution.CalculateTxResources(resources, res.calls, lc.txType, changes, nil)
	if err != nil {
		return nil, err
	}
	txType := lc.txType
	info := execution.NewTransactionExecutionInfoWithoutFeeInfo(res.validateInfo, res.callInfo, nil, actualResources, &txType)

	actualFee, err := fee.CalculateTxFee(actualResources, blockContext, t.feeType())
	if err != nil {
		return nil, err
	}
	maxFee := t.MaxFee()
	switch {
	case revertCause != nil:
		log.Debugf("%v %v reverted; %v", lc.txType, t.hash, revertCause)
		info = info.ToRevertError(revertCause.Error(), revertCause)
	case actualFee.Gt(&maxFee):
		reason := fmt.Sprintf("Calculated fee (%v) exceeds max fee (%v)", actualFee.Dec(), maxFee.Dec())
		log.Debugf("%v %v reverted; %v", lc.txType, t.hash, reason)
		info = info.ToRevertError(reason, &fee.ActualFeeExceedsMaxFeeError{ActualFee: actualFee, MaxFee: maxFee})
	default:
		diff, err := state.StateDiffFromCachedState(overlay)
		if err != nil {
			return nil, err
		}
		if err := s.ApplyStateUpdate(diff); err != nil {
			return nil, err
		}
	}

	txContext := t.executionContext(lc.sender, blockContext.InvokeTxMaxNSteps)
	feeTransferInfo, chargedFee, err := fee.ChargeFee(s, actualResources, blockContext, maxFee, txContext, t.flags.SkipFeeTransfer, invoker)
	if err != nil {
		log.Warningf("cannot charge fee of %v %v; %v", lc.txType, t.hash, err)
		info.SetFeeInfo(chargedFee, nil)
		return info, fmt.Errorf("%w; %w", ErrFeeTransferFailed, err)
	}
	info.SetFeeInfo(chargedFee, feeTransferInfo)
	return info, nil
}

// handleNonce checks the nonce of the sender and consumes it. The increment
// is written to the outer state so that it survives a revert. Legacy
// transactions carry no nonce, they only increment it if the block context
// asks for it.
func (t *accountTx) handleNonce(s state.State, blockContext *txcontext.BlockContext, sender types.Address) error {
	if t.version.IsZero() {
		if blockContext.IncrementLegacyNonce {
			return s.IncrementNonce(sender)
		}
		return nil
	}
	current, err := s.GetNonceAt(sender)
	if err != nil {
		return err
	}
	if current != t.nonce && !t.flags.SkipNonceCheck {
		return &InvalidNonceError{Address: sender, Expected: current, Actual: t.nonce}
	}
	return s.IncrementNonce(sender)
}

// checkFeeBalance verifies that the max fee covers the estimated overhead of
// the transaction and that the sender can pay it.
func (t *accountTx) checkFeeBalance(s state.State, blockContext *txcontext.BlockContext, lc lifecycle) error {
	maxFee := t.MaxFee()
	if maxFee.IsZero() {
		return nil
	}
	minimalFee, err := t.estimateMinimalFee(blockContext, lc)
	if err != nil {
		return err
	}
	if maxFee.Lt(&minimalFee) {
		return &MaxFeeTooLowError{MaxFee: maxFee, MinimalFee: minimalFee}
	}
	low, high, err := s.GetFeeTokenBalance(blockContext, lc.sender, t.feeType())
	if err != nil {
		return err
	}
	// A fee fits into 128 bits, any balance with a non-zero high word covers it.
	if high.IsZero() && low.Uint256().Lt(&maxFee) {
		return &MaxFeeExceedsBalanceError{MaxFee: maxFee, BalanceLow: low, BalanceHigh: high}
	}
	return nil
}

func (t *accountTx) estimateMinimalFee(blockContext *txcontext.BlockContext, lc lifecycle) (uint256.Int, error) {
	resources := map[string]uint64{
		txcontext.L1GasUsage: execution.GetOnchainDataSegmentLength(lc.estimatedChanges) * execution.SharpGasPerMemoryWord,
		txcontext.NSteps:     lc.estimatedSteps,
	}
	return fee.CalculateTxFee(resources, blockContext, t.feeType())
}

// validateCall runs a validation entry point of the sender and checks its
// outcome: accounts compiled from Sierra must return VALID, and no account
// may call other contracts during validation.
func (t *accountTx) validateCall(
	entryPoint *execution.ExecutionEntryPoint,
	s *state.CachedState,
	blockContext *txcontext.BlockContext,
	resources *execution.ResourcesManager,
	invoker execution.EntryPointInvoker,
) (*execution.CallInfo, error) {
	if t.flags.SkipExecute {
		return nil, nil
	}
	result, err := invoker.Execute(entryPoint, s, blockContext, resources, t.executionContext(entryPoint.ContractAddress, blockContext.ValidateMaxNSteps), blockContext.ValidateMaxNSteps)
	if err != nil {
		return nil, err
	}
	call := result.CallInfo

	classHash, err := s.GetClassHashAt(entryPoint.ContractAddress)
	if err != nil {
		return nil, err
	}
	class, err := s.GetContractClass(classHash)
	if err != nil {
		return nil, fmt.Errorf("%w; %w", ErrMissingCompiledClass, err)
	}
	if contractclass.IsSierraClass(class) && (call == nil || !felt.Equals(call.Retdata, []felt.Felt{starkhash.ValidRetdata})) {
		var retdata []felt.Felt
		if call != nil {
			retdata = call.Retdata
		}
		return nil, fmt.Errorf("%w: %v", ErrWrongValidateRetdata, retdata)
	}
	if err := execution.VerifyNoCallsToOtherContracts(call); err != nil {
		return nil, fmt.Errorf("%w; %w", ErrInvalidContractCall, err)
	}
	return call, nil
}
