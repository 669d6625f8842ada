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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestCurrentAccountTxFields_MaxFeeIsProductOfL1Bounds(t *testing.T) {
	fields := &CurrentAccountTxFields{L1ResourceBounds: &ResourceBounds{MaxAmount: 10, MaxPricePerUnit: *uint256.NewInt(7)}}
	fee := fields.MaxFee()
	assert.Equal(t, uint64(70), fee.Uint64())

	fields = &CurrentAccountTxFields{}
	fee = fields.MaxFee()
	assert.True(t, fee.IsZero())
}

func TestCurrentAccountTxFields_MaxFeeSaturates(t *testing.T) {
	fields := &CurrentAccountTxFields{L1ResourceBounds: &ResourceBounds{MaxAmount: ^uint64(0), MaxPricePerUnit: MaxUint128}}
	assert.Equal(t, MaxUint128, fields.MaxFee())
}

func TestAccountTxFields_CloneIsDeep(t *testing.T) {
	original := &CurrentAccountTxFields{L1ResourceBounds: &ResourceBounds{MaxAmount: 1}}
	clone := original.Clone().(*CurrentAccountTxFields)
	clone.L1ResourceBounds.MaxAmount = 2
	assert.Equal(t, uint64(1), original.L1ResourceBounds.MaxAmount)

	deprecated := NewDeprecatedAccountTxFields(5)
	copied := deprecated.Clone().(*DeprecatedAccountTxFields)
	copied.MaxFeeAmount = *uint256.NewInt(6)
	fee := deprecated.MaxFee()
	assert.Equal(t, uint64(5), fee.Uint64())
}
