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

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/holiman/uint256"
)

var (
	ErrUnsupportedTxVersion     = errors.New("unsupported transaction version")
	ErrInvalidNonce             = errors.New("invalid transaction nonce")
	ErrMaxFeeTooLow             = errors.New("max fee is lower than the minimal fee")
	ErrMaxFeeExceedsBalance     = errors.New("max fee exceeds balance")
	ErrFieldsVersionMismatch    = errors.New("account transaction fields do not match the version")
	ErrEmptyConstructorCalldata = errors.New("constructor calldata given for a class without constructor")
	ErrInvalidContractCall      = errors.New("invalid call to another contract")
	ErrWrongValidateRetdata     = errors.New("validation returned unexpected data")
	ErrMissingCompiledClass     = errors.New("missing compiled class")
	ErrFeeTransferFailed        = errors.New("fee transfer failed")
)

type UnsupportedTxVersionError struct {
	TxType    string
	Version   felt.Felt
	Supported []uint64
}

func (e *UnsupportedTxVersionError) Error() string {
	return fmt.Sprintf("%s transaction version %v is not supported, supported versions: %v", e.TxType, e.Version, e.Supported)
}

func (e *UnsupportedTxVersionError) Unwrap() error {
	return ErrUnsupportedTxVersion
}

type InvalidNonceError struct {
	Address  types.Address
	Expected felt.Felt
	Actual   felt.Felt
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid transaction nonce of %v, expected %v, got %v", e.Address, e.Expected, e.Actual)
}

func (e *InvalidNonceError) Unwrap() error {
	return ErrInvalidNonce
}

type MaxFeeTooLowError struct {
	MaxFee     uint256.Int
	MinimalFee uint256.Int
}

func (e *MaxFeeTooLowError) Error() string {
	return fmt.Sprintf("max fee %v is lower than the minimal fee %v", e.MaxFee.Dec(), e.MinimalFee.Dec())
}

func (e *MaxFeeTooLowError) Unwrap() error {
	return ErrMaxFeeTooLow
}

type MaxFeeExceedsBalanceError struct {
	MaxFee      uint256.Int
	BalanceLow  felt.Felt
	BalanceHigh felt.Felt
}

func (e *MaxFeeExceedsBalanceError) Error() string {
	return fmt.Sprintf("max fee %v exceeds balance (low %v, high %v)", e.MaxFee.Dec(), e.BalanceLow, e.BalanceHigh)
}

func (e *MaxFeeExceedsBalanceError) Unwrap() error {
	return ErrMaxFeeExceedsBalance
}

type FieldsVersionMismatchError struct {
	Version felt.Felt
	Fields  string
}

func (e *FieldsVersionMismatchError) Error() string {
	return fmt.Sprintf("%s account transaction fields cannot be used with version %v", e.Fields, e.Version)
}

func (e *FieldsVersionMismatchError) Unwrap() error {
	return ErrFieldsVersionMismatch
}
