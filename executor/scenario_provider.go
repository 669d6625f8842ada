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

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/felt"
)

// NewScenarioProvider creates a provider serving the blocks of the scenario.
// Block numbers of the provider are indexes into the scenario blocks.
func NewScenarioProvider(scenario *Scenario, chainID felt.Felt) Provider {
	return &scenarioProvider{scenario: scenario, chainID: chainID}
}

type scenarioProvider struct {
	scenario *Scenario
	chainID  felt.Felt
}

func (p *scenarioProvider) Run(from int, to int, consumer Consumer) error {
	if from < 0 {
		from = 0
	}
	if to > len(p.scenario.Blocks) {
		to = len(p.scenario.Blocks)
	}
	for block := from; block < to; block++ {
		for i, desc := range p.scenario.Blocks[block].Transactions {
			tx, err := desc.Build(p.chainID)
			if err != nil {
				return fmt.Errorf("cannot build transaction %d of block %d; %w", i, block, err)
			}
			if err := consumer(TransactionInfo{Block: block, Transaction: i, Data: tx}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *scenarioProvider) Close() {
	// ignored
}
