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

package execution

import (
	"maps"
)

// ExecutionResources are the VM resources consumed by an execution.
type ExecutionResources struct {
	NSteps                 uint64            `json:"n_steps"`
	NMemoryHoles           uint64            `json:"n_memory_holes"`
	BuiltinInstanceCounter map[string]uint64 `json:"builtin_instance_counter"`
}

// Add returns the sum of r and other.
func (r ExecutionResources) Add(other ExecutionResources) ExecutionResources {
	res := ExecutionResources{
		NSteps:                 r.NSteps + other.NSteps,
		NMemoryHoles:           r.NMemoryHoles + other.NMemoryHoles,
		BuiltinInstanceCounter: make(map[string]uint64, len(r.BuiltinInstanceCounter)),
	}
	maps.Copy(res.BuiltinInstanceCounter, r.BuiltinInstanceCounter)
	for name, count := range other.BuiltinInstanceCounter {
		res.BuiltinInstanceCounter[name] += count
	}
	return res
}

// FilterUnusedBuiltins drops builtins with a zero counter.
func (r ExecutionResources) FilterUnusedBuiltins() ExecutionResources {
	res := ExecutionResources{
		NSteps:                 r.NSteps,
		NMemoryHoles:           r.NMemoryHoles,
		BuiltinInstanceCounter: map[string]uint64{},
	}
	for name, count := range r.BuiltinInstanceCounter {
		if count > 0 {
			res.BuiltinInstanceCounter[name] = count
		}
	}
	return res
}

// ResourcesManager accumulates the resources of all executions belonging to
// one transaction. Counters only ever grow.
type ResourcesManager struct {
	SyscallCounter map[string]uint64
	CairoUsage     ExecutionResources
}

func NewResourcesManager() *ResourcesManager {
	return &ResourcesManager{
		SyscallCounter: map[string]uint64{},
		CairoUsage:     ExecutionResources{BuiltinInstanceCounter: map[string]uint64{}},
	}
}

// IncrementSyscallCounter records amount invocations of the named syscall.
func (m *ResourcesManager) IncrementSyscallCounter(name string, amount uint64) {
	m.SyscallCounter[name] += amount
}

// AddCairoUsage adds the resources of one execution.
func (m *ResourcesManager) AddCairoUsage(resources ExecutionResources) {
	m.CairoUsage = m.CairoUsage.Add(resources)
}
