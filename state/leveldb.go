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

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// table prefixes of the persistent state
const (
	classHashPrefix         = 'h'
	noncePrefix             = 'n'
	storagePrefix           = 's'
	compiledClassHashPrefix = 'k'
	classPrefix             = 'c'
)

// LevelDbStore is a persistent StateReader. Changes reach it only as whole
// state diffs through Apply.
type LevelDbStore struct {
	db *leveldb.DB
}

// OpenLevelDbStore opens or creates the store in the given directory. The
// cache size is the block cache capacity in bytes, 0 selects the default.
func OpenLevelDbStore(path string, cacheSize int) (*LevelDbStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{BlockCacheCapacity: cacheSize})
	if err != nil {
		return nil, fmt.Errorf("cannot open state db %v; %w", path, err)
	}
	return &LevelDbStore{db: db}, nil
}

// NewInMemoryLevelDbStore creates a store without a backing directory.
func NewInMemoryLevelDbStore() (*LevelDbStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDbStore{db: db}, nil
}

func (s *LevelDbStore) Close() error {
	return s.db.Close()
}

func (s *LevelDbStore) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, error) {
	data, err := s.db.Get(classKey(hash), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, &MissingClassError{ClassHash: hash}
	}
	if err != nil {
		return nil, err
	}
	return contractclass.Parse(data)
}

func (s *LevelDbStore) GetClassHashAt(address types.Address) (types.ClassHash, error) {
	value, err := s.get(addressKey(classHashPrefix, address))
	if err != nil {
		return types.ClassHash{}, err
	}
	return types.ClassHashFromFelt(value), nil
}

func (s *LevelDbStore) GetNonceAt(address types.Address) (felt.Felt, error) {
	return s.get(addressKey(noncePrefix, address))
}

func (s *LevelDbStore) GetStorageAt(entry types.StorageEntry) (felt.Felt, error) {
	return s.get(storageKey(entry.Address, entry.Key))
}

func (s *LevelDbStore) GetCompiledClassHash(hash types.ClassHash) (types.CompiledClassHash, error) {
	value, err := s.get(feltKey(compiledClassHashPrefix, hash.Felt()))
	if err != nil {
		return types.CompiledClassHash{}, err
	}
	return types.ClassHashFromFelt(value), nil
}

// get reads a felt, absent keys read as zero.
func (s *LevelDbStore) get(key []byte) (felt.Felt, error) {
	data, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return felt.Zero, nil
	}
	if err != nil {
		return felt.Zero, err
	}
	return felt.FromBytes(data), nil
}

// Apply writes the diff atomically.
func (s *LevelDbStore) Apply(diff *StateDiff) error {
	batch := new(leveldb.Batch)
	for _, change := range diff.Ordered() {
		var key []byte
		switch change.Kind {
		case ClassHashChange:
			key = addressKey(classHashPrefix, change.Address)
		case NonceChange:
			key = addressKey(noncePrefix, change.Address)
		case StorageChange:
			key = storageKey(change.Address, change.Key)
		case CompiledClassHashChange:
			key = feltKey(compiledClassHashPrefix, change.Key)
		default:
			return fmt.Errorf("unknown state change kind %v", change.Kind)
		}
		value := change.Value.Bytes()
		batch.Put(key, value[:])
	}
	for hash, class := range diff.DeclaredClasses {
		data, err := contractclass.Marshal(class)
		if err != nil {
			return fmt.Errorf("cannot encode class %v; %w", hash, err)
		}
		batch.Put(classKey(hash), data)
	}
	return s.db.Write(batch, nil)
}

func feltKey(prefix byte, f felt.Felt) []byte {
	b := f.Bytes()
	return append([]byte{prefix}, b[:]...)
}

func addressKey(prefix byte, address types.Address) []byte {
	return feltKey(prefix, address.Felt)
}

func storageKey(address types.Address, key felt.Felt) []byte {
	k := key.Bytes()
	return append(addressKey(storagePrefix, address), k[:]...)
}

func classKey(hash types.ClassHash) []byte {
	return append([]byte{classPrefix}, hash[:]...)
}
