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
	"github.com/Fantom-foundation/Starkrun/state"
)

const (
	SharpGasPerMemoryWord = 612

	gasPerLog           = 375
	gasPerLogTopic      = 375
	gasPerLogDataWord   = 256
	nDefaultTopics      = 1
	l2ToL1MsgHeaderSize = 3
	l1ToL2MsgHeaderSize = 5

	logMsgToL1NTopics          = 2
	logMsgToL1EncodedDataSize  = 2
	consumedMsgToL2NTopics     = 3
	consumedMsgToL2EncodedSize = (l1ToL2MsgHeaderSize + 1) - consumedMsgToL2NTopics
)

// GetOnchainDataSegmentLength returns the number of words the given changes
// occupy in the data published on L1.
func GetOnchainDataSegmentLength(changes state.StateChangesCount) uint64 {
	return changes.NModifiedContracts*2 +
		changes.NClassHashUpdates +
		changes.NStorageUpdates*2 +
		changes.NCompiledClassHashUpdates*2
}

func getEventEmissionCost(nTopics, dataLength uint64) uint64 {
	return gasPerLog + (nTopics+nDefaultTopics)*gasPerLogTopic + dataLength*gasPerLogDataWord
}

func getMessageSegmentLength(messages []L2ToL1Message, l1HandlerPayloadSize *uint64) uint64 {
	var res uint64
	for _, message := range messages {
		res += uint64(len(message.Payload)) + l2ToL1MsgHeaderSize
	}
	if l1HandlerPayloadSize != nil {
		res += *l1HandlerPayloadSize + l1ToL2MsgHeaderSize
	}
	return res
}

// CalculateTxGasUsage returns the L1 gas spent on publishing the messages
// and state changes of a transaction.
func CalculateTxGasUsage(messages []L2ToL1Message, changes state.StateChangesCount, l1HandlerPayloadSize *uint64) uint64 {
	var starknetGasUsage uint64
	for _, message := range messages {
		starknetGasUsage += getEventEmissionCost(logMsgToL1NTopics, logMsgToL1EncodedDataSize+uint64(len(message.Payload)))
	}
	if l1HandlerPayloadSize != nil {
		starknetGasUsage += getEventEmissionCost(consumedMsgToL2NTopics, *l1HandlerPayloadSize+consumedMsgToL2EncodedSize)
	}
	sharpGasUsage := (getMessageSegmentLength(messages, l1HandlerPayloadSize) + GetOnchainDataSegmentLength(changes)) * SharpGasPerMemoryWord
	return starknetGasUsage + sharpGasUsage
}
