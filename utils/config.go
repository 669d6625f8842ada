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

package utils

import (
	"fmt"
	"testing"

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/transaction"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/c2h5oh/datasize"
	"github.com/urfave/cli/v2"
)

// Config summarizes the options of a starkrun command.
type Config struct {
	AppName     string
	CommandName string

	Chain   string    // network name or raw chain id given by the user
	ChainID felt.Felt // resolved chain id

	LogLevel           string // level of the logging of the app action
	NoHeartbeatLogging bool   // disables the periodic progress reports

	StateDb          string            // directory of the persistent state, empty for an in-memory run
	StateDbCache     string            // user given size of the block cache of the persistent state
	StateDbCacheSize datasize.ByteSize // parsed StateDbCache
	ClassCacheSize   int               // capacity of the contract class cache, 0 is unbounded
	ProgramCacheSize int               // capacity of the program cache of the invoker
	StateDbLogging   bool              // log all state operations of transactions

	SkipValidate    bool
	SkipExecute     bool
	SkipFeeTransfer bool
	IgnoreMaxFee    bool
	SkipNonceCheck  bool

	IncrementLegacyNonce bool // version 0 transactions increment the nonce

	TraceFile         string // gzip compressed json trace output
	ContinueOnFailure bool   // continue the run after a failed transaction
	MaxNumErrors      int    // failures tolerated with ContinueOnFailure, 0 is unlimited
	ErrorLogging      string // file recording failures of transactions
}

type configContext struct {
	log logger.Logger
	cfg *Config
	ctx *cli.Context
}

func newConfigContext(cfg *Config, ctx *cli.Context) *configContext {
	return &configContext{
		log: logger.NewLogger(cfg.LogLevel, "Config"),
		cfg: cfg,
		ctx: ctx,
	}
}

// NewTestConfig creates a new config for test purpose
func NewTestConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Chain:            "testnet",
		ChainID:          txcontext.TestNetChainID,
		LogLevel:         "critical",
		ProgramCacheSize: 16,
	}
}

// NewConfig creates and initializes Config with commandline arguments.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg, specified, err := createConfigFromFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read flags; %w", err)
	}

	cc := newConfigContext(cfg, ctx)

	cfg.ChainID, err = txcontext.ChainIDFromName(cfg.Chain)
	if err != nil {
		return nil, fmt.Errorf("cannot get chain id; %w", err)
	}

	if err = cc.setStateDbCacheSize(); err != nil {
		return nil, err
	}

	if cfg.SkipExecute && !cfg.SkipFeeTransfer {
		cc.log.Warning("--skip-execute is used; fees are charged for transactions whose entry points never ran")
	}
	if specified[MaxNumErrorsFlag.Name] && !cfg.ContinueOnFailure {
		cc.log.Warningf("--%v has no effect without --%v", MaxNumErrorsFlag.Name, ContinueOnFailureFlag.Name)
	}

	cc.reportNewConfig()
	return cfg, nil
}

func (cc *configContext) setStateDbCacheSize() error {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(cc.cfg.StateDbCache)); err != nil {
		return fmt.Errorf("invalid state db cache size %q; %w", cc.cfg.StateDbCache, err)
	}
	cc.cfg.StateDbCacheSize = size
	return nil
}

func (cc *configContext) reportNewConfig() {
	cc.log.Noticef("Run config:")
	cc.log.Infof("Chain: %v (%v)", cc.cfg.Chain, cc.cfg.ChainID)
	if cc.cfg.StateDb == "" {
		cc.log.Infof("State: in memory")
	} else {
		cc.log.Infof("State: %v, cache %v", cc.cfg.StateDb, cc.cfg.StateDbCacheSize.HumanReadable())
	}
	cc.log.Infof("Simulation flags: %+v", cc.cfg.SimulationFlags())
	if cc.cfg.IncrementLegacyNonce {
		cc.log.Infof("Version 0 transactions increment the account nonce")
	}
	if cc.cfg.TraceFile != "" {
		cc.log.Infof("Trace file: %v", cc.cfg.TraceFile)
	}
}

// SimulationFlags returns the simulation options transactions are executed with.
func (cfg *Config) SimulationFlags() transaction.SimulationFlags {
	return transaction.SimulationFlags{
		SkipValidate:    cfg.SkipValidate,
		SkipExecute:     cfg.SkipExecute,
		SkipFeeTransfer: cfg.SkipFeeTransfer,
		IgnoreMaxFee:    cfg.IgnoreMaxFee,
		SkipNonceCheck:  cfg.SkipNonceCheck,
	}
}

// IsSimulation reports whether any simulation option is set.
func (cfg *Config) IsSimulation() bool {
	return cfg.SimulationFlags() != transaction.SimulationFlags{}
}

// BlockContext returns the default block context of the configured chain.
func (cfg *Config) BlockContext() *txcontext.BlockContext {
	ctx := txcontext.DefaultBlockContext(cfg.ChainID)
	ctx.IncrementLegacyNonce = cfg.IncrementLegacyNonce
	return ctx
}
