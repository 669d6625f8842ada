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

package proxy

import (
	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
)

// NewLoggerProxy wraps the given State instance into a logging wrapper causing
// every State operation to be logged for debugging.
func NewLoggerProxy(s state.State, log logger.Logger) state.State {
	return &LoggerProxy{
		s:   s,
		log: log,
	}
}

type LoggerProxy struct {
	s   state.State
	log logger.Logger
}

func (p *LoggerProxy) GetContractClass(hash types.ClassHash) (contractclass.CompiledClass, error) {
	res, err := p.s.GetContractClass(hash)
	p.log.Debugf("GetContractClass, %v, %v", hash, err)
	return res, err
}

func (p *LoggerProxy) GetClassHashAt(address types.Address) (types.ClassHash, error) {
	res, err := p.s.GetClassHashAt(address)
	p.log.Debugf("GetClassHashAt, %v, %v, %v", address, res, err)
	return res, err
}

func (p *LoggerProxy) GetNonceAt(address types.Address) (felt.Felt, error) {
	res, err := p.s.GetNonceAt(address)
	p.log.Debugf("GetNonceAt, %v, %v, %v", address, res, err)
	return res, err
}

func (p *LoggerProxy) GetStorageAt(entry types.StorageEntry) (felt.Felt, error) {
	res, err := p.s.GetStorageAt(entry)
	p.log.Debugf("GetStorageAt, %v, %v, %v", entry, res, err)
	return res, err
}

func (p *LoggerProxy) GetCompiledClassHash(hash types.ClassHash) (types.CompiledClassHash, error) {
	res, err := p.s.GetCompiledClassHash(hash)
	p.log.Debugf("GetCompiledClassHash, %v, %v, %v", hash, res, err)
	return res, err
}

func (p *LoggerProxy) SetContractClass(hash types.ClassHash, class contractclass.CompiledClass) error {
	err := p.s.SetContractClass(hash, class)
	p.log.Debugf("SetContractClass, %v, %v", hash, err)
	return err
}

func (p *LoggerProxy) DeployContract(address types.Address, hash types.ClassHash) error {
	err := p.s.DeployContract(address, hash)
	p.log.Debugf("DeployContract, %v, %v, %v", address, hash, err)
	return err
}

func (p *LoggerProxy) IncrementNonce(address types.Address) error {
	err := p.s.IncrementNonce(address)
	p.log.Debugf("IncrementNonce, %v, %v", address, err)
	return err
}

func (p *LoggerProxy) SetStorageAt(entry types.StorageEntry, value felt.Felt) {
	p.s.SetStorageAt(entry, value)
	p.log.Debugf("SetStorageAt, %v, %v", entry, value)
}

func (p *LoggerProxy) SetClassHashAt(address types.Address, hash types.ClassHash) error {
	err := p.s.SetClassHashAt(address, hash)
	p.log.Debugf("SetClassHashAt, %v, %v, %v", address, hash, err)
	return err
}

func (p *LoggerProxy) SetCompiledClassHash(hash types.ClassHash, compiled types.CompiledClassHash) error {
	err := p.s.SetCompiledClassHash(hash, compiled)
	p.log.Debugf("SetCompiledClassHash, %v, %v, %v", hash, compiled, err)
	return err
}

func (p *LoggerProxy) CreateTransactional() (*state.CachedState, error) {
	res, err := p.s.CreateTransactional()
	p.log.Debugf("CreateTransactional, %v", err)
	return res, err
}

func (p *LoggerProxy) ApplyStateUpdate(diff *state.StateDiff) error {
	err := p.s.ApplyStateUpdate(diff)
	if diff != nil {
		for _, change := range diff.Ordered() {
			p.log.Debugf("ApplyStateUpdate, %v", change)
		}
	}
	p.log.Debugf("ApplyStateUpdate, %v", err)
	return err
}

func (p *LoggerProxy) CountActualStateChanges(feeTokenAndSender *state.FeeTokenAndSender) (state.StateChangesCount, error) {
	res, err := p.s.CountActualStateChanges(feeTokenAndSender)
	p.log.Debugf("CountActualStateChanges, %+v, %v", res, err)
	return res, err
}

func (p *LoggerProxy) GetFeeTokenBalance(ctx *txcontext.BlockContext, address types.Address, feeType txcontext.FeeType) (felt.Felt, felt.Felt, error) {
	low, high, err := p.s.GetFeeTokenBalance(ctx, address, feeType)
	p.log.Debugf("GetFeeTokenBalance, %v, %v, %v, %v, %v", address, feeType, low, high, err)
	return low, high, err
}
