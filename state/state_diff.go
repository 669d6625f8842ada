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
	"slices"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
)

// StateDiff is the flattened set of changes one or more transactions commit.
type StateDiff struct {
	AddressToClassHash           map[types.Address]types.ClassHash
	AddressToNonce               map[types.Address]felt.Felt
	ClassHashToCompiledClassHash map[types.ClassHash]types.CompiledClassHash
	StorageUpdates               map[types.Address]map[felt.Felt]felt.Felt
	DeclaredClasses              map[types.ClassHash]contractclass.CompiledClass
}

// NewStateDiff creates an empty diff.
func NewStateDiff() *StateDiff {
	return &StateDiff{
		AddressToClassHash:           map[types.Address]types.ClassHash{},
		AddressToNonce:               map[types.Address]felt.Felt{},
		ClassHashToCompiledClassHash: map[types.ClassHash]types.CompiledClassHash{},
		StorageUpdates:               map[types.Address]map[felt.Felt]felt.Felt{},
		DeclaredClasses:              map[types.ClassHash]contractclass.CompiledClass{},
	}
}

// StateDiffFromCachedState collects all writes of the overlay that differ
// from the values it read from its parent.
func StateDiffFromCachedState(s *CachedState) (*StateDiff, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot build state diff of nil state")
	}
	diff := NewStateDiff()
	for address, hash := range subtractMappings(s.cache.classHashWrites, s.cache.classHashInitial) {
		diff.AddressToClassHash[address] = hash
	}
	for address, nonce := range subtractMappings(s.cache.nonceWrites, s.cache.nonceInitial) {
		diff.AddressToNonce[address] = nonce
	}
	for hash, compiled := range subtractMappings(s.cache.compiledClassHashWrites, s.cache.compiledClassHashInitial) {
		diff.ClassHashToCompiledClassHash[hash] = compiled
	}
	for entry, value := range subtractMappings(s.cache.storageWrites, s.cache.storageInitial) {
		diff.setStorage(entry, value)
	}
	for hash, class := range s.declaredClasses {
		diff.DeclaredClasses[hash] = class
	}
	return diff, nil
}

func (d *StateDiff) setStorage(entry types.StorageEntry, value felt.Felt) {
	slots, found := d.StorageUpdates[entry.Address]
	if !found {
		slots = map[felt.Felt]felt.Felt{}
		d.StorageUpdates[entry.Address] = slots
	}
	slots[entry.Key] = value
}

// IsEmpty reports whether the diff carries no change at all.
func (d *StateDiff) IsEmpty() bool {
	return len(d.AddressToClassHash) == 0 &&
		len(d.AddressToNonce) == 0 &&
		len(d.ClassHashToCompiledClassHash) == 0 &&
		len(d.StorageUpdates) == 0 &&
		len(d.DeclaredClasses) == 0
}

// Merge adds the changes of other to d, other takes precedence.
func (d *StateDiff) Merge(other *StateDiff) {
	for address, hash := range other.AddressToClassHash {
		d.AddressToClassHash[address] = hash
	}
	for address, nonce := range other.AddressToNonce {
		d.AddressToNonce[address] = nonce
	}
	for hash, compiled := range other.ClassHashToCompiledClassHash {
		d.ClassHashToCompiledClassHash[hash] = compiled
	}
	for address, slots := range other.StorageUpdates {
		for key, value := range slots {
			d.setStorage(types.StorageEntry{Address: address, Key: key}, value)
		}
	}
	for hash, class := range other.DeclaredClasses {
		d.DeclaredClasses[hash] = class
	}
}

// ChangeKind names the kind of a single state change.
type ChangeKind int

const (
	ClassHashChange ChangeKind = iota
	NonceChange
	StorageChange
	CompiledClassHashChange
)

func (k ChangeKind) String() string {
	switch k {
	case ClassHashChange:
		return "class_hash"
	case NonceChange:
		return "nonce"
	case StorageChange:
		return "storage"
	case CompiledClassHashChange:
		return "compiled_class_hash"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// StateChange is one entry of an ordered diff. Key is only used by storage
// changes (the slot) and compiled class hash changes (the class hash).
type StateChange struct {
	Kind    ChangeKind
	Address types.Address
	Key     felt.Felt
	Value   felt.Felt
}

func (c StateChange) String() string {
	switch c.Kind {
	case StorageChange:
		return fmt.Sprintf("%v %v[%v] = %v", c.Kind, c.Address, c.Key, c.Value)
	case CompiledClassHashChange:
		return fmt.Sprintf("%v %v = %v", c.Kind, c.Key, c.Value)
	}
	return fmt.Sprintf("%v %v = %v", c.Kind, c.Address, c.Value)
}

// Ordered lists all felt valued changes of the diff, deduplicated and
// sorted by kind, address and key. Declared classes are not included.
func (d *StateDiff) Ordered() []StateChange {
	res := make([]StateChange, 0, len(d.AddressToClassHash)+len(d.AddressToNonce)+len(d.ClassHashToCompiledClassHash))
	for address, hash := range d.AddressToClassHash {
		res = append(res, StateChange{Kind: ClassHashChange, Address: address, Value: hash.Felt()})
	}
	for address, nonce := range d.AddressToNonce {
		res = append(res, StateChange{Kind: NonceChange, Address: address, Value: nonce})
	}
	for address, slots := range d.StorageUpdates {
		for key, value := range slots {
			res = append(res, StateChange{Kind: StorageChange, Address: address, Key: key, Value: value})
		}
	}
	for hash, compiled := range d.ClassHashToCompiledClassHash {
		res = append(res, StateChange{Kind: CompiledClassHashChange, Key: hash.Felt(), Value: compiled.Felt()})
	}
	slices.SortFunc(res, func(a, b StateChange) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if c := types.CompareAddresses(a.Address, b.Address); c != 0 {
			return c
		}
		return a.Key.Cmp(b.Key)
	})
	return res
}
