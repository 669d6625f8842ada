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
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// CachedState is a copy-on-write overlay over a StateReader. The first read
// of each entry from the parent is recorded as its initial value, all writes
// stay local until they are flattened into a StateDiff. A CachedState is
// owned by a single execution and is not safe for concurrent use.
type CachedState struct {
	parent  StateReader
	classes ContractClassCache
	cache   stateCache

	declaredClasses map[types.ClassHash]contractclass.CompiledClass
}

type stateCache struct {
	classHashInitial         map[types.Address]types.ClassHash
	nonceInitial             map[types.Address]felt.Felt
	storageInitial           map[types.StorageEntry]felt.Felt
	compiledClassHashInitial map[types.ClassHash]types.CompiledClassHash

	classHashWrites         map[types.Address]types.ClassHash
	nonceWrites             map[types.Address]felt.Felt
	storageWrites           map[types.StorageEntry]felt.Felt
	compiledClassHashWrites map[types.ClassHash]types.CompiledClassHash
}

func newStateCache() stateCache {
	return stateCache{
		classHashInitial:         map[types.Address]types.ClassHash{},
		nonceInitial:             map[types.Address]felt.Felt{},
		storageInitial:           map[types.StorageEntry]felt.Felt{},
		compiledClassHashInitial: map[types.ClassHash]types.CompiledClassHash{},
		classHashWrites:          map[types.Address]types.ClassHash{},
		nonceWrites:              map[types.Address]felt.Felt{},
		storageWrites:            map[types.StorageEntry]felt.Felt{},
		compiledClassHashWrites:  map[types.ClassHash]types.CompiledClassHash{},
	}
}

// NewCachedState creates an overlay over the given reader. Classes read from
// the reader are kept in the class cache, which may be nil.
func NewCachedState(reader StateReader, classes ContractClassCache) *CachedState {
	return &CachedState{
		parent:          reader,
		classes:         classes,
		cache:           newStateCache(),
		declaredClasses: map[types.ClassHash]contractclass.CompiledClass{},
	}
}

// CreateTransactional returns a child overlay reading through s. The child
// shares the class cache of s, its writes never reach s unless applied.
func (s *CachedState) CreateTransactional() (*CachedState, error) {
	return NewCachedState(s, s.classes), nil
}

func (s *CachedState) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, error) {
	if class, found := s.declaredClasses[hash]; found {
		return class, nil
	}
	if s.classes != nil {
		if class, found := s.classes.GetContractClass(hash); found {
			return class, nil
		}
	}
	class, err := s.parent.GetContractClass(hash)
	if err != nil {
		return nil, err
	}
	if s.classes != nil {
		s.classes.SetContractClass(hash, class)
	}
	return class, nil
}

func (s *CachedState) GetClassHashAt(address types.Address) (types.ClassHash, error) {
	if hash, found := s.cache.classHashWrites[address]; found {
		return hash, nil
	}
	if hash, found := s.cache.classHashInitial[address]; found {
		return hash, nil
	}
	hash, err := s.parent.GetClassHashAt(address)
	if err != nil {
		return types.ClassHash{}, err
	}
	s.cache.classHashInitial[address] = hash
	return hash, nil
}

func (s *CachedState) GetNonceAt(address types.Address) (felt.Felt, error) {
	if nonce, found := s.cache.nonceWrites[address]; found {
		return nonce, nil
	}
	if nonce, found := s.cache.nonceInitial[address]; found {
		return nonce, nil
	}
	nonce, err := s.parent.GetNonceAt(address)
	if err != nil {
		return felt.Zero, err
	}
	s.cache.nonceInitial[address] = nonce
	return nonce, nil
}

func (s *CachedState) GetStorageAt(entry types.StorageEntry) (felt.Felt, error) {
	if value, found := s.cache.storageWrites[entry]; found {
		return value, nil
	}
	if value, found := s.cache.storageInitial[entry]; found {
		return value, nil
	}
	value, err := s.parent.GetStorageAt(entry)
	if err != nil {
		return felt.Zero, err
	}
	s.cache.storageInitial[entry] = value
	return value, nil
}

func (s *CachedState) GetCompiledClassHash(hash types.ClassHash) (types.CompiledClassHash, error) {
	if compiled, found := s.cache.compiledClassHashWrites[hash]; found {
		return compiled, nil
	}
	if compiled, found := s.cache.compiledClassHashInitial[hash]; found {
		return compiled, nil
	}
	compiled, err := s.parent.GetCompiledClassHash(hash)
	if err != nil {
		return types.CompiledClassHash{}, err
	}
	s.cache.compiledClassHashInitial[hash] = compiled
	return compiled, nil
}

func (s *CachedState) SetContractClass(hash types.ClassHash, class contractclass.CompiledClass) error {
	if class == nil {
		return fmt.Errorf("cannot register nil class for %v", hash)
	}
	s.declaredClasses[hash] = class
	return nil
}

func (s *CachedState) DeployContract(address types.Address, hash types.ClassHash) error {
	if address.IsZero() {
		return fmt.Errorf("%w: %v", ErrContractAddressOutOfRange, address)
	}
	current, err := s.GetClassHashAt(address)
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return &AddressUnavailableError{Address: address, Deployed: current}
	}
	s.cache.classHashWrites[address] = hash
	return nil
}

func (s *CachedState) IncrementNonce(address types.Address) error {
	nonce, err := s.GetNonceAt(address)
	if err != nil {
		return err
	}
	s.cache.nonceWrites[address] = nonce.Add(felt.One)
	return nil
}

func (s *CachedState) SetStorageAt(entry types.StorageEntry, value felt.Felt) {
	s.cache.storageWrites[entry] = value
}

func (s *CachedState) SetClassHashAt(address types.Address, hash types.ClassHash) error {
	if address.IsZero() {
		return fmt.Errorf("%w: %v", ErrContractAddressOutOfRange, address)
	}
	s.cache.classHashWrites[address] = hash
	return nil
}

func (s *CachedState) SetCompiledClassHash(hash types.ClassHash, compiled types.CompiledClassHash) error {
	s.cache.compiledClassHashWrites[hash] = compiled
	return nil
}

// ApplyStateUpdate writes the diff into the local buffers of s.
func (s *CachedState) ApplyStateUpdate(diff *StateDiff) error {
	if diff == nil {
		return nil
	}
	for _, change := range diff.Ordered() {
		switch change.Kind {
		case ClassHashChange:
			s.cache.classHashWrites[change.Address] = types.ClassHashFromFelt(change.Value)
		case NonceChange:
			s.cache.nonceWrites[change.Address] = change.Value
		case StorageChange:
			s.cache.storageWrites[types.StorageEntry{Address: change.Address, Key: change.Key}] = change.Value
		case CompiledClassHashChange:
			s.cache.compiledClassHashWrites[types.ClassHashFromFelt(change.Key)] = types.ClassHashFromFelt(change.Value)
		default:
			return fmt.Errorf("unknown state change kind %v", change.Kind)
		}
	}
	for hash, class := range diff.DeclaredClasses {
		s.declaredClasses[hash] = class
	}
	return nil
}

func (s *CachedState) CountActualStateChanges(feeTokenAndSender *FeeTokenAndSender) (StateChangesCount, error) {
	storageUpdates := subtractMappings(s.cache.storageWrites, s.cache.storageInitial)
	classHashUpdates := subtractMappings(s.cache.classHashWrites, s.cache.classHashInitial)
	nonceUpdates := subtractMappings(s.cache.nonceWrites, s.cache.nonceInitial)
	compiledClassHashUpdates := subtractMappings(s.cache.compiledClassHashWrites, s.cache.compiledClassHashInitial)

	modified := map[types.Address]struct{}{}
	for entry := range storageUpdates {
		modified[entry.Address] = struct{}{}
	}
	for address := range classHashUpdates {
		modified[address] = struct{}{}
	}
	for address := range nonceUpdates {
		modified[address] = struct{}{}
	}

	// The fee transfer is charged after the count is taken, its update of
	// the sender balance is accounted for in advance.
	if feeTokenAndSender != nil {
		low, _ := starkhash.Erc20BalanceKeys(feeTokenAndSender.Sender)
		storageUpdates[types.StorageEntry{Address: feeTokenAndSender.FeeToken, Key: low}] = felt.Zero
		delete(modified, feeTokenAndSender.FeeToken)
	}

	return StateChangesCount{
		NStorageUpdates:           uint64(len(storageUpdates)),
		NClassHashUpdates:         uint64(len(classHashUpdates)),
		NCompiledClassHashUpdates: uint64(len(compiledClassHashUpdates)),
		NModifiedContracts:        uint64(len(modified)),
	}, nil
}

func (s *CachedState) GetFeeTokenBalance(ctx *txcontext.BlockContext, address types.Address, feeType txcontext.FeeType) (felt.Felt, felt.Felt, error) {
	token := ctx.FeeTokenAddress(feeType)
	lowKey, highKey := starkhash.Erc20BalanceKeys(address)
	low, err := s.GetStorageAt(types.StorageEntry{Address: token, Key: lowKey})
	if err != nil {
		return felt.Zero, felt.Zero, err
	}
	high, err := s.GetStorageAt(types.StorageEntry{Address: token, Key: highKey})
	if err != nil {
		return felt.Zero, felt.Zero, err
	}
	return low, high, nil
}

// subtractMappings returns the entries of writes that differ from the
// recorded initial values.
func subtractMappings[K comparable, V comparable](writes, initial map[K]V) map[K]V {
	res := make(map[K]V, len(writes))
	for key, value := range writes {
		if old, found := initial[key]; found && old == value {
			continue
		}
		res[key] = value
	}
	return res
}
