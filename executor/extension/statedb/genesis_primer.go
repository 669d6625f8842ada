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

package statedb

import (
	"fmt"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/utils"
)

// MakeGenesisPrimer creates an extension writing the declared classes and
// genesis contracts of the scenario into the state before the first block.
// A state already holding the fee token is considered primed.
func MakeGenesisPrimer(cfg *utils.Config, scenario *executor.Scenario) executor.Extension {
	return makeGenesisPrimer(scenario, logger.NewLogger(cfg.LogLevel, "Genesis-Primer"))
}

func makeGenesisPrimer(scenario *executor.Scenario, log logger.Logger) *genesisPrimer {
	return &genesisPrimer{
		scenario: scenario,
		log:      log,
	}
}

type genesisPrimer struct {
	extension.NilExtension
	scenario *executor.Scenario
	log      logger.Logger
}

func (p *genesisPrimer) PreRun(_ executor.State, ctx *executor.Context) error {
	if ctx.State == nil {
		return fmt.Errorf("cannot prime genesis; state is nil")
	}
	if ctx.BlockContext == nil {
		return fmt.Errorf("cannot prime genesis; block context is nil")
	}

	feeToken := ctx.BlockContext.FeeTokenAddress(txcontext.Eth)
	hash, err := ctx.State.GetClassHashAt(feeToken)
	if err != nil {
		return err
	}
	if !hash.IsZero() {
		p.log.Noticef("State already primed, fee token %v has class %v", feeToken, hash)
		return nil
	}

	diff, err := p.scenario.GenesisDiff(feeToken)
	if err != nil {
		return fmt.Errorf("cannot build genesis; %w", err)
	}
	p.log.Noticef("Priming %d classes and %d genesis contracts", len(p.scenario.Classes), len(p.scenario.Genesis))
	return ctx.State.ApplyStateUpdate(diff)
}
