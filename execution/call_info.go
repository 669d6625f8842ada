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
	"slices"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/types"
)

// OrderedEvent is an event together with its position within a transaction.
type OrderedEvent struct {
	Order uint64      `json:"order"`
	Keys  []felt.Felt `json:"keys"`
	Data  []felt.Felt `json:"data"`
}

// Event is an emitted event attributed to its emitting contract.
type Event struct {
	FromAddress types.Address `json:"from_address"`
	Keys        []felt.Felt   `json:"keys"`
	Data        []felt.Felt   `json:"data"`
}

// OrderedL2ToL1Message is a message to L1 with its position within a
// transaction.
type OrderedL2ToL1Message struct {
	Order     uint64        `json:"order"`
	ToAddress types.Address `json:"to_address"`
	Payload   []felt.Felt   `json:"payload"`
}

// L2ToL1Message is a message to L1 attributed to its sending contract.
type L2ToL1Message struct {
	FromAddress types.Address `json:"from_address"`
	ToAddress   types.Address `json:"to_address"`
	Payload     []felt.Felt   `json:"payload"`
}

// CallInfo is the trace of one entry point execution including all calls it
// issued. It is not modified once the execution returned.
type CallInfo struct {
	CallerAddress       types.Address                 `json:"caller_address"`
	CallType            *CallType                     `json:"call_type,omitempty"`
	ContractAddress     types.Address                 `json:"contract_address"`
	CodeAddress         *types.Address                `json:"code_address,omitempty"`
	ClassHash           *types.ClassHash              `json:"class_hash,omitempty"`
	EntryPointSelector  *felt.Felt                    `json:"entry_point_selector,omitempty"`
	EntryPointType      *contractclass.EntryPointType `json:"entry_point_type,omitempty"`
	Calldata            []felt.Felt                   `json:"calldata"`
	Retdata             []felt.Felt                   `json:"retdata"`
	ExecutionResources  ExecutionResources            `json:"execution_resources"`
	Events              []OrderedEvent                `json:"events"`
	L2ToL1Messages      []OrderedL2ToL1Message        `json:"l2_to_l1_messages"`
	StorageReadValues   []felt.Felt                   `json:"storage_read_values"`
	AccessedStorageKeys map[felt.Felt]struct{}        `json:"-"`
	InternalCalls       []*CallInfo                   `json:"internal_calls"`
	GasConsumed         uint64                        `json:"gas_consumed"`
	Failure             bool                          `json:"failure_flag"`
}

// EmptyConstructorCall is the trace of deploying a class without
// constructor, no code is executed.
func EmptyConstructorCall(contractAddress, caller types.Address, classHash *types.ClassHash) *CallInfo {
	callType := Call
	entryPointType := contractclass.Constructor
	selector := starkhash.ConstructorSelector
	return &CallInfo{
		CallerAddress:      caller,
		CallType:           &callType,
		ContractAddress:    contractAddress,
		ClassHash:          classHash,
		EntryPointSelector: &selector,
		EntryPointType:     &entryPointType,
		ExecutionResources: ExecutionResources{BuiltinInstanceCounter: map[string]uint64{}},
	}
}

// Flatten lists c and all its internal calls in depth-first order.
func (c *CallInfo) Flatten() []*CallInfo {
	if c == nil {
		return nil
	}
	res := []*CallInfo{c}
	for _, internal := range c.InternalCalls {
		res = append(res, internal.Flatten()...)
	}
	return res
}

// GetSortedEvents returns the events of the whole call tree in emission order.
func (c *CallInfo) GetSortedEvents() ([]Event, error) {
	calls := c.Flatten()
	count := 0
	for _, call := range calls {
		count += len(call.Events)
	}
	events := make([]*Event, count)
	for _, call := range calls {
		for _, ordered := range call.Events {
			if ordered.Order >= uint64(count) || events[ordered.Order] != nil {
				return nil, fmt.Errorf("unexpected event order %d in call of %v", ordered.Order, call.ContractAddress)
			}
			events[ordered.Order] = &Event{FromAddress: call.ContractAddress, Keys: ordered.Keys, Data: ordered.Data}
		}
	}
	res := make([]Event, count)
	for i, event := range events {
		res[i] = *event
	}
	return res, nil
}

// GetSortedL2ToL1Messages returns the messages of the whole call tree in
// sending order.
func (c *CallInfo) GetSortedL2ToL1Messages() ([]L2ToL1Message, error) {
	calls := c.Flatten()
	count := 0
	for _, call := range calls {
		count += len(call.L2ToL1Messages)
	}
	messages := make([]*L2ToL1Message, count)
	for _, call := range calls {
		for _, ordered := range call.L2ToL1Messages {
			if ordered.Order >= uint64(count) || messages[ordered.Order] != nil {
				return nil, fmt.Errorf("unexpected message order %d in call of %v", ordered.Order, call.ContractAddress)
			}
			messages[ordered.Order] = &L2ToL1Message{FromAddress: call.ContractAddress, ToAddress: ordered.ToAddress, Payload: ordered.Payload}
		}
	}
	res := make([]L2ToL1Message, count)
	for i, message := range messages {
		res[i] = *message
	}
	return res, nil
}

// NumberOfDeployments counts constructor calls within the call tree.
func (c *CallInfo) NumberOfDeployments() uint64 {
	var res uint64
	for _, call := range c.Flatten() {
		if call.EntryPointType != nil && *call.EntryPointType == contractclass.Constructor {
			res++
		}
	}
	return res
}

// VerifyNoCallsToOtherContracts fails if any call below c targets another
// contract than c itself.
func VerifyNoCallsToOtherContracts(c *CallInfo) error {
	if c == nil {
		return nil
	}
	for _, internal := range c.Flatten()[1:] {
		if internal.ContractAddress != c.ContractAddress {
			return fmt.Errorf("%w: %v called %v", ErrUnauthorizedContractCall, c.ContractAddress, internal.ContractAddress)
		}
	}
	return nil
}

func sortedKeys(keys map[felt.Felt]struct{}) []felt.Felt {
	res := make([]felt.Felt, 0, len(keys))
	for key := range keys {
		res = append(res, key)
	}
	slices.SortFunc(res, felt.Felt.Cmp)
	return res
}

// AccessedStorageKeysSorted returns the storage keys the call accessed.
func (c *CallInfo) AccessedStorageKeysSorted() []felt.Felt {
	return sortedKeys(c.AccessedStorageKeys)
}
