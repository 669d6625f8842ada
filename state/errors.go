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

package state

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/types"
)

var (
	ErrClassNotFound              = errors.New("contract class not found")
	ErrContractAddressUnavailable = errors.New("contract address unavailable")
	ErrContractAddressOutOfRange  = errors.New("contract address out of range")
)

// MissingClassError reports a class hash without registered class.
type MissingClassError struct {
	ClassHash types.ClassHash
}

func (e *MissingClassError) Error() string {
	return fmt.Sprintf("%v: %v", ErrClassNotFound, e.ClassHash)
}

func (e *MissingClassError) Unwrap() error {
	return ErrClassNotFound
}

// AddressUnavailableError reports a deployment to an occupied address.
type AddressUnavailableError struct {
	Address  types.Address
	Deployed types.ClassHash
}

func (e *AddressUnavailableError) Error() string {
	return fmt.Sprintf("%v: %v already holds class %v", ErrContractAddressUnavailable, e.Address, e.Deployed)
}

func (e *AddressUnavailableError) Unwrap() error {
	return ErrContractAddressUnavailable
}
