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
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	contractAddressPrefix = felt.MustFromShortString("STARKNET_CONTRACT_ADDRESS")
	deployAccountPrefix   = felt.MustFromShortString("deploy_account")
	invokePrefix          = felt.MustFromShortString("invoke")

	// addressUpperBound is 2**251 - 256, addresses are reduced below it.
	addressUpperBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))
)

// StarknetKeccak returns the keccak256 digest of data truncated to 250 bits.
func StarknetKeccak(data []byte) felt.Felt {
	digest := crypto.Keccak256(data)
	digest[0] &= 0x03
	return felt.FromBytes(digest)
}

// Pedersen hashes a pair of field elements.
func Pedersen(a, b felt.Felt) felt.Felt {
	x, y := a.Element(), b.Element()
	return felt.FromElement(pedersenhash.Pedersen(&x, &y))
}

// ComputeHashOnElements chains Pedersen over all elements and finally
// hashes in the number of elements.
func ComputeHashOnElements(elems ...felt.Felt) felt.Felt {
	ptrs := make([]*fp.Element, len(elems))
	for i := range elems {
		e := elems[i].Element()
		ptrs[i] = &e
	}
	return felt.FromElement(pedersenhash.PedersenArray(ptrs...))
}

// CalculateContractAddress derives the address a contract gets when its
// class is deployed by the given deployer with the given salt and
// constructor arguments.
func CalculateContractAddress(salt felt.Felt, classHash types.ClassHash, calldata []felt.Felt, deployer types.Address) (types.Address, error) {
	if classHash.IsZero() {
		return types.Address{}, fmt.Errorf("cannot derive a contract address from a zero class hash")
	}
	raw := ComputeHashOnElements(
		contractAddressPrefix,
		deployer.Felt,
		salt,
		classHash.Felt(),
		ComputeHashOnElements(calldata...),
	)
	reduced := new(big.Int).Mod(raw.BigInt(), addressUpperBound)
	return types.NewAddress(felt.FromBigInt(reduced)), nil
}

// CalculateDeployAccountTransactionHash binds all fields of an account
// deployment into its hash.
func CalculateDeployAccountTransactionHash(
	version felt.Felt,
	address types.Address,
	classHash types.ClassHash,
	constructorCalldata []felt.Felt,
	maxFee felt.Felt,
	nonce felt.Felt,
	salt felt.Felt,
	chainID felt.Felt,
) felt.Felt {
	calldata := make([]felt.Felt, 0, len(constructorCalldata)+2)
	calldata = append(calldata, classHash.Felt(), salt)
	calldata = append(calldata, constructorCalldata...)
	return ComputeHashOnElements(
		deployAccountPrefix,
		version,
		address.Felt,
		felt.Zero,
		ComputeHashOnElements(calldata...),
		maxFee,
		chainID,
		nonce,
	)
}

// CalculateInvokeTransactionHash computes the hash of an invoke transaction.
// Version 0 transactions bind the entry point selector and carry no nonce,
// later versions bind the nonce instead.
func CalculateInvokeTransactionHash(
	version felt.Felt,
	sender types.Address,
	selector felt.Felt,
	calldata []felt.Felt,
	maxFee felt.Felt,
	chainID felt.Felt,
	nonce felt.Felt,
) felt.Felt {
	if version.IsZero() {
		return ComputeHashOnElements(
			invokePrefix,
			version,
			sender.Felt,
			selector,
			ComputeHashOnElements(calldata...),
			maxFee,
			chainID,
		)
	}
	return ComputeHashOnElements(
		invokePrefix,
		version,
		sender.Felt,
		felt.Zero,
		ComputeHashOnElements(calldata...),
		maxFee,
		chainID,
		nonce,
	)
}
