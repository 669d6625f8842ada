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
	"sync"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/types"
	lru "github.com/hashicorp/golang-lru"
)

// ContractClassCache keeps already loaded classes. Implementations are safe
// for concurrent use.
type ContractClassCache interface {
	GetContractClass(types.ClassHash) (contractclass.CompiledClass, bool)
	SetContractClass(types.ClassHash, contractclass.CompiledClass)
}

// NewContractClassCache creates a cache holding at most capacity classes.
// A capacity <= 0 creates a cache that never evicts.
func NewContractClassCache(capacity int) (ContractClassCache, error) {
	if capacity <= 0 {
		return NewPermanentContractClassCache(), nil
	}
	return NewLruContractClassCache(capacity)
}

// PermanentContractClassCache keeps every class it is given.
type PermanentContractClassCache struct {
	classes map[types.ClassHash]contractclass.CompiledClass
	mutex   sync.RWMutex
}

func NewPermanentContractClassCache() *PermanentContractClassCache {
	return &PermanentContractClassCache{
		classes: map[types.ClassHash]contractclass.CompiledClass{},
	}
}

func (c *PermanentContractClassCache) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	class, found := c.classes[hash]
	return class, found
}

func (c *PermanentContractClassCache) SetContractClass(hash types.ClassHash, class contractclass.CompiledClass) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.classes[hash] = class
}

// LruContractClassCache keeps the most recently used classes.
type LruContractClassCache struct {
	cache *lru.Cache
}

func NewLruContractClassCache(capacity int) (*LruContractClassCache, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &LruContractClassCache{cache: cache}, nil
}

func (c *LruContractClassCache) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, bool) {
	value, found := c.cache.Get(hash)
	if !found {
		return nil, false
	}
	return value.(contractclass.CompiledClass), true
}

func (c *LruContractClassCache) SetContractClass(hash types.ClassHash, class contractclass.CompiledClass) {
	c.cache.Add(hash, class)
}
