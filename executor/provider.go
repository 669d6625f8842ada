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

package executor

//go:generate mockgen -source provider.go -destination provider_mocks.go -package executor

import "github.com/Fantom-foundation/Starkrun/transaction"

type Provider interface {
	// Run iterates through the transactions in the block range [from,to) in
	// order and forwards each of them to the provided consumer. Execution
	// aborts if the consumer returns an error or an error during the
	// transaction retrieval process occurred.
	Run(from int, to int, consumer Consumer) error
	// Close releases resources held by the provider implementation. After this
	// no more operations are allowed on the same instance.
	Close()
}

// Consumer is a type alias for the type of function to which transactions
// can be forwarded by a Provider.
type Consumer func(TransactionInfo) error

// TransactionInfo summarizes the per-transaction information provided by a
// Provider.
type TransactionInfo struct {
	Block       int
	Transaction int
	Data        transaction.Transaction
}
