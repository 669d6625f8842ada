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

package extension

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/executor"
)

// MakeBlockInfoUpdater creates an extension setting the block information
// of the block context to the values of the scenario block about to be
// processed.
func MakeBlockInfoUpdater(scenario *executor.Scenario) executor.Extension {
	return &blockInfoUpdater{scenario: scenario}
}

type blockInfoUpdater struct {
	NilExtension
	scenario *executor.Scenario
}

func (u *blockInfoUpdater) PreBlock(state executor.State, ctx *executor.Context) error {
	if state.Block < 0 || state.Block >= len(u.scenario.Blocks) {
		return fmt.Errorf("block %d is not part of the scenario", state.Block)
	}
	if ctx.BlockContext == nil {
		return fmt.Errorf("missing block context")
	}
	u.scenario.Blocks[state.Block].UpdateBlockInfo(&ctx.BlockContext.BlockInfo)
	return nil
}
