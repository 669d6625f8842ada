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

package starkhash

import (
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
)

// SelectorFromName computes the entry point selector of a function name.
func SelectorFromName(name string) felt.Felt {
	return StarknetKeccak([]byte(name))
}

var (
	ConstructorSelector       = SelectorFromName("constructor")
	ValidateDeploySelector    = SelectorFromName("__validate_deploy__")
	ValidateDeclareSelector   = SelectorFromName("__validate_declare__")
	ValidateSelector          = SelectorFromName("__validate__")
	ExecuteSelector           = SelectorFromName("__execute__")
	TransferSelector          = SelectorFromName("transfer")
	BalanceOfSelector         = SelectorFromName("balanceOf")
	DefaultEntryPointSelector = felt.Zero

	// ValidRetdata is the value newer account classes return from their
	// validation entry points.
	ValidRetdata = felt.MustFromShortString("VALID")

	erc20BalancesVariable = SelectorFromName("ERC20_balances")
)

// Erc20BalanceKeys returns the fee token storage keys holding the low and
// high 128-bit words of the balance of the given owner.
func Erc20BalanceKeys(owner types.Address) (low, high felt.Felt) {
	low = Pedersen(erc20BalancesVariable, owner.Felt)
	high = low.Add(felt.One)
	return low, high
}
