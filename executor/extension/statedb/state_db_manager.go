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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/executor"
	"github.com/Fantom-foundation/Starkrun/executor/extension"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/utils"
)

// MakeStateDbManager creates an executor.Extension providing the outer state
// of the run. The state reads through a LevelDB store which receives the
// changes of every processed block.
func MakeStateDbManager(cfg *utils.Config) executor.Extension {
	return makeStateDbManager(cfg, logger.NewLogger(cfg.LogLevel, "Db manager"))
}

func makeStateDbManager(cfg *utils.Config, log logger.Logger) *stateDbManager {
	return &stateDbManager{
		cfg: cfg,
		log: log,
	}
}

type stateDbManager struct {
	extension.NilExtension
	cfg     *utils.Config
	log     logger.Logger
	store   *state.LevelDbStore
	classes state.ContractClassCache
}

func (m *stateDbManager) PreRun(_ executor.State, ctx *executor.Context) error {
	if ctx.State != nil {
		m.log.Infof("Using state provided by the caller")
		return nil
	}

	var err error
	m.classes, err = state.NewContractClassCache(m.cfg.ClassCacheSize)
	if err != nil {
		return fmt.Errorf("cannot create class cache; %w", err)
	}

	if m.cfg.StateDb == "" {
		m.log.Warningf("--state-db is not used. The state is kept in memory and discarded at the end of this run.")
		m.store, err = state.NewInMemoryLevelDbStore()
	} else {
		m.log.Noticef("State-db directory: %v; cache %v", m.cfg.StateDb, m.cfg.StateDbCacheSize.HumanReadable())
		m.store, err = state.OpenLevelDbStore(m.cfg.StateDb, int(m.cfg.StateDbCacheSize.Bytes()))
	}
	if err != nil {
		return err
	}

	ctx.State = state.NewCachedState(m.store, m.classes)
	return nil
}

// PostBlock writes the changes of the block into the store and starts a
// fresh state on top of it.
func (m *stateDbManager) PostBlock(state executor.State, ctx *executor.Context) error {
	if m.store == nil {
		return nil
	}
	if err := m.commit(ctx); err != nil {
		return fmt.Errorf("cannot commit block %d; %w", state.Block, err)
	}
	return nil
}

func (m *stateDbManager) PostRun(_ executor.State, ctx *executor.Context, err error) error {
	if m.store == nil {
		return nil
	}

	var errs []error
	// changes of an aborted block are dropped
	if err == nil {
		errs = append(errs, m.commit(ctx))
	}
	if cErr := m.store.Close(); cErr != nil {
		errs = append(errs, fmt.Errorf("failed to close state-db; %w", cErr))
	}
	m.store = nil
	return errors.Join(errs...)
}

func (m *stateDbManager) commit(ctx *executor.Context) error {
	if ctx.State == nil {
		return fmt.Errorf("state-db is nil")
	}
	diff, err := state.StateDiffFromCachedState(ctx.State)
	if err != nil {
		return err
	}
	if !diff.IsEmpty() {
		if err := m.store.Apply(diff); err != nil {
			return err
		}
	}
	ctx.State = state.NewCachedState(m.store, m.classes)
	return nil
}
