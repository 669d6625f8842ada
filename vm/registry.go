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

package vm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/Starkrun/felt"
)

// ErrProgramNotFound is returned if a class refers to an unregistered program.
var ErrProgramNotFound = errors.New("program not found")

// EntryPointFunc is the native implementation of one entry point. It returns
// the retdata of the call.
type EntryPointFunc func(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error)

// Program maps entry point selectors to their implementations.
type Program map[felt.Felt]EntryPointFunc

// Registry holds the programs classes may refer to by name. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]Program
}

func NewRegistry() *Registry {
	return &Registry{programs: map[string]Program{}}
}

// Register adds a program under the given name, replacing a previous one.
func (r *Registry) Register(name string, program Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[name] = program
}

// Lookup returns the program registered under the given name.
func (r *Registry) Lookup(name string) (Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	program, found := r.programs[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	}
	return program, nil
}

// Names lists the names of all registered programs.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.programs))
	for name := range r.programs {
		res = append(res, name)
	}
	return res
}
