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

package txcontext

import (
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/holiman/uint256"
)

// AccountTxFields are the fee payment terms of an account transaction. They
// are either DeprecatedAccountTxFields (versions below 3) or
// CurrentAccountTxFields (version 3).
type AccountTxFields interface {
	// MaxFee is the upper bound of the fee the account is willing to pay.
	MaxFee() uint256.Int
	// Clone returns a deep copy of the fields.
	Clone() AccountTxFields
}

// DeprecatedAccountTxFields carry a flat max fee.
type DeprecatedAccountTxFields struct {
	MaxFeeAmount uint256.Int
}

func NewDeprecatedAccountTxFields(maxFee uint64) *DeprecatedAccountTxFields {
	return &DeprecatedAccountTxFields{MaxFeeAmount: *uint256.NewInt(maxFee)}
}

func (f *DeprecatedAccountTxFields) MaxFee() uint256.Int {
	return f.MaxFeeAmount
}

func (f *DeprecatedAccountTxFields) Clone() AccountTxFields {
	res := *f
	return &res
}

// DataAvailabilityMode selects where state diffs of a transaction are posted.
type DataAvailabilityMode int

const (
	L1 DataAvailabilityMode = iota
	L2
)

// ResourceBounds limit the usage and price of one resource.
type ResourceBounds struct {
	MaxAmount       uint64
	MaxPricePerUnit uint256.Int
}

// CurrentAccountTxFields bound each resource separately.
type CurrentAccountTxFields struct {
	L1ResourceBounds      *ResourceBounds
	L2ResourceBounds      *ResourceBounds
	Tip                   uint64
	NonceDAMode           DataAvailabilityMode
	FeeDAMode             DataAvailabilityMode
	PaymasterData         []felt.Felt
	AccountDeploymentData []felt.Felt
}

// MaxUint128 is the largest fee representable on chain.
var MaxUint128 = *new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

// MaxFee is the product of the L1 gas bounds, saturating at 2**128-1.
func (f *CurrentAccountTxFields) MaxFee() uint256.Int {
	if f.L1ResourceBounds == nil {
		return uint256.Int{}
	}
	amount := uint256.NewInt(f.L1ResourceBounds.MaxAmount)
	res, overflow := new(uint256.Int).MulOverflow(amount, &f.L1ResourceBounds.MaxPricePerUnit)
	if overflow || res.Gt(&MaxUint128) {
		return MaxUint128
	}
	return *res
}

func (f *CurrentAccountTxFields) Clone() AccountTxFields {
	res := *f
	if f.L1ResourceBounds != nil {
		bounds := *f.L1ResourceBounds
		res.L1ResourceBounds = &bounds
	}
	if f.L2ResourceBounds != nil {
		bounds := *f.L2ResourceBounds
		res.L2ResourceBounds = &bounds
	}
	res.PaymasterData = append([]felt.Felt(nil), f.PaymasterData...)
	res.AccountDeploymentData = append([]felt.Felt(nil), f.AccountDeploymentData...)
	return &res
}
