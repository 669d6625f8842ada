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
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/holiman/uint256"
)

// QueryVersionBase is added to the version of transactions which are only
// meant to be simulated.
var QueryVersionBase = felt.FromUint256(new(uint256.Int).Lsh(uint256.NewInt(1), 128))

// GetTxVersion strips the query marker from a version.
func GetTxVersion(version felt.Felt) felt.Felt {
	if version.Cmp(QueryVersionBase) >= 0 {
		return version.Sub(QueryVersionBase)
	}
	return version
}

// CheckAccountTxFieldsVersion verifies that deprecated fee fields are only
// used before version 3 and resource bounds only with version 3.
func CheckAccountTxFieldsVersion(fields txcontext.AccountTxFields, version felt.Felt) error {
	three := felt.FromUint64(3)
	switch fields.(type) {
	case *txcontext.DeprecatedAccountTxFields:
		if version.Cmp(three) < 0 {
			return nil
		}
		return &FieldsVersionMismatchError{Version: version, Fields: "deprecated"}
	case *txcontext.CurrentAccountTxFields:
		if version == three {
			return nil
		}
		return &FieldsVersionMismatchError{Version: version, Fields: "current"}
	}
	return &FieldsVersionMismatchError{Version: version, Fields: "unknown"}
}

func isSupportedVersion(version felt.Felt, supported []uint64) bool {
	for _, v := range supported {
		if version == felt.FromUint64(v) {
			return true
		}
	}
	return false
}
