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

// Names of the metered resources.
const (
	L1GasUsage = "l1_gas_usage"
	NSteps     = "n_steps"

	OutputBuiltin       = "output_builtin"
	PedersenBuiltin     = "pedersen_builtin"
	RangeCheckBuiltin   = "range_check_builtin"
	EcdsaBuiltin        = "ecdsa_builtin"
	BitwiseBuiltin      = "bitwise_builtin"
	EcOpBuiltin         = "ec_op_builtin"
	PoseidonBuiltin     = "poseidon_builtin"
	KeccakBuiltin       = "keccak_builtin"
	SegmentArenaBuiltin = "segment_arena_builtin"
)
