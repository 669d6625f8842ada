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
	"fmt"
	"sort"

	"github.com/Fantom-foundation/Starkrun/felt"
)

var (
	MainnetChainID  = felt.MustFromShortString("SN_MAIN")
	SepoliaChainID  = felt.MustFromShortString("SN_SEPOLIA")
	TestNetChainID  = felt.MustFromShortString("SN_GOERLI")
	TestNet2ChainID = felt.MustFromShortString("SN_GOERLI2")
)

var chainIDs = map[string]felt.Felt{
	"mainnet":  MainnetChainID,
	"sepolia":  SepoliaChainID,
	"testnet":  TestNetChainID,
	"testnet2": TestNet2ChainID,
}

// ChainIDFromName resolves a network name or a raw chain id string such as
// "SN_MAIN".
func ChainIDFromName(name string) (felt.Felt, error) {
	if id, found := chainIDs[name]; found {
		return id, nil
	}
	for _, id := range chainIDs {
		if raw, err := felt.FromShortString(name); err == nil && raw == id {
			return id, nil
		}
	}
	return felt.Zero, fmt.Errorf("unknown chain %q; supported chains: %v", name, ChainNames())
}

// ChainNames lists the known network names.
func ChainNames() []string {
	names := make([]string, 0, len(chainIDs))
	for name := range chainIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
