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

package txcontext

import "fmt"

// TransactionType enumerates the kinds of transactions.
type TransactionType int

const (
	Declare TransactionType = iota
	Deploy
	DeployAccount
	InitializeBlockInfo
	InvokeFunction
	L1Handler
)

func (t TransactionType) String() string {
	switch t {
	case Declare:
		return "Declare"
	case Deploy:
		return "Deploy"
	case DeployAccount:
		return "DeployAccount"
	case InitializeBlockInfo:
		return "InitializeBlockInfo"
	case InvokeFunction:
		return "InvokeFunction"
	case L1Handler:
		return "L1Handler"
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(data []byte) error {
	for candidate := Declare; candidate <= L1Handler; candidate++ {
		if candidate.String() == string(data) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown transaction type %q", string(data))
}
