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

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// FeeType selects the token fees are paid in.
type FeeType int

const (
	Eth FeeType = iota
	Strk
)

func (t FeeType) String() string {
	switch t {
	case Eth:
		return "ETH"
	case Strk:
		return "STRK"
	}
	return fmt.Sprintf("FeeType(%d)", int(t))
}

// GasPrices lists the L1 gas price per fee token, in the token's smallest unit.
type GasPrices struct {
	EthL1GasPrice  uint256.Int
	StrkL1GasPrice uint256.Int
}

func (g GasPrices) ByFeeType(t FeeType) uint256.Int {
	if t == Strk {
		return g.StrkL1GasPrice
	}
	return g.EthL1GasPrice
}

// FeeTokenAddresses lists the ERC20 contracts holding fee balances.
type FeeTokenAddresses struct {
	Eth  types.Address
	Strk types.Address
}

func (f FeeTokenAddresses) ByFeeType(t FeeType) types.Address {
	if t == Strk {
		return f.Strk
	}
	return f.Eth
}

// StarknetOsConfig holds the chain wide constants of the operating system.
type StarknetOsConfig struct {
	ChainID         felt.Felt
	FeeTokenAddress FeeTokenAddresses
}

// BlockInfo describes the block a transaction is executed in.
type BlockInfo struct {
	BlockNumber      uint64
	BlockTimestamp   uint64
	GasPrice         GasPrices
	SequencerAddress types.Address
}

// BlockContext is the chain context transactions are executed against.
type BlockContext struct {
	OsConfig  StarknetOsConfig
	BlockInfo BlockInfo

	// CairoResourceFeeWeights maps resource names to their L1 gas weight.
	CairoResourceFeeWeights map[string]decimal.Decimal

	InvokeTxMaxNSteps uint64
	ValidateMaxNSteps uint64
	MaxRecursionDepth int

	// IncrementLegacyNonce makes version 0 transactions increment the
	// account nonce even though their nonce is never checked.
	IncrementLegacyNonce bool
}

const (
	DefaultInvokeTxMaxNSteps = 3_000_000
	DefaultValidateMaxNSteps = 1_000_000
	DefaultMaxRecursionDepth = 50
)

var (
	// DefaultFeeTokenAddress is the ETH fee token of the public networks.
	DefaultFeeTokenAddress = types.NewAddress(felt.MustFromString("0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"))
	// DefaultStrkFeeTokenAddress is the STRK fee token of the public networks.
	DefaultStrkFeeTokenAddress = types.NewAddress(felt.MustFromString("0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"))
	// DefaultSequencerAddress receives fees when no sequencer is configured.
	DefaultSequencerAddress = types.NewAddress(felt.MustFromString("0x01176a1bd84444c89232ec27754698e5d2e7e1a7f1539f12027f28b23ec9f3d8"))
)

// DefaultCairoResourceFeeWeights returns the L1 gas weight of each resource.
func DefaultCairoResourceFeeWeights() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		NSteps:              decimal.RequireFromString("0.005"),
		OutputBuiltin:       decimal.Zero,
		PedersenBuiltin:     decimal.RequireFromString("0.16"),
		RangeCheckBuiltin:   decimal.RequireFromString("0.08"),
		EcdsaBuiltin:        decimal.RequireFromString("10.24"),
		BitwiseBuiltin:      decimal.RequireFromString("0.32"),
		EcOpBuiltin:         decimal.RequireFromString("5.12"),
		PoseidonBuiltin:     decimal.RequireFromString("0.16"),
		KeccakBuiltin:       decimal.RequireFromString("10.24"),
		SegmentArenaBuiltin: decimal.Zero,
	}
}

// DefaultBlockContext returns a context of the given chain with zero gas
// prices, so transactions without a max fee can be executed.
func DefaultBlockContext(chainID felt.Felt) *BlockContext {
	return &BlockContext{
		OsConfig: StarknetOsConfig{
			ChainID: chainID,
			FeeTokenAddress: FeeTokenAddresses{
				Eth:  DefaultFeeTokenAddress,
				Strk: DefaultStrkFeeTokenAddress,
			},
		},
		BlockInfo: BlockInfo{
			SequencerAddress: DefaultSequencerAddress,
		},
		CairoResourceFeeWeights: DefaultCairoResourceFeeWeights(),
		InvokeTxMaxNSteps:       DefaultInvokeTxMaxNSteps,
		ValidateMaxNSteps:       DefaultValidateMaxNSteps,
		MaxRecursionDepth:       DefaultMaxRecursionDepth,
	}
}

// GasPrice returns the L1 gas price of the given fee token.
func (c *BlockContext) GasPrice(t FeeType) uint256.Int {
	return c.BlockInfo.GasPrice.ByFeeType(t)
}

// FeeTokenAddress returns the fee token contract of the given fee type.
func (c *BlockContext) FeeTokenAddress(t FeeType) types.Address {
	return c.OsConfig.FeeTokenAddress.ByFeeType(t)
}
