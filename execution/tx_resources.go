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
	"fmt"

	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
)

// CalculateTxResources aggregates everything a transaction consumed into the
// named resources its fee is computed from: the L1 gas usage, the steps of
// executed code and OS, and every used builtin.
func CalculateTxResources(
	resources *ResourcesManager,
	callInfos []*CallInfo,
	txType txcontext.TransactionType,
	changes state.StateChangesCount,
	l1HandlerPayloadSize *uint64,
) (map[string]uint64, error) {
	var messages []L2ToL1Message
	for _, call := range callInfos {
		if call == nil {
			continue
		}
		sorted, err := call.GetSortedL2ToL1Messages()
		if err != nil {
			return nil, fmt.Errorf("%w; %w", ErrResourcesCalculation, err)
		}
		messages = append(messages, sorted...)
	}
	l1GasUsage := CalculateTxGasUsage(messages, changes, l1HandlerPayloadSize)

	additional, err := GetAdditionalOsResources(resources.SyscallCounter, txType)
	if err != nil {
		return nil, err
	}
	total := resources.CairoUsage.Add(additional).FilterUnusedBuiltins()

	res := map[string]uint64{
		txcontext.L1GasUsage: l1GasUsage,
		txcontext.NSteps:     total.NSteps + total.NMemoryHoles,
	}
	for name, count := range total.BuiltinInstanceCounter {
		res[name] = count
	}
	return res, nil
}
