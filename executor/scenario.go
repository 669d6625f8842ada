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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/transaction"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/Fantom-foundation/Starkrun/vm"
	"github.com/holiman/uint256"
)

// Transaction types accepted in scenario files.
const (
	DeployAccountTxType  = "DEPLOY_ACCOUNT"
	InvokeFunctionTxType = "INVOKE_FUNCTION"
)

// Scenario is a self-contained run: the classes and contracts of the
// genesis state followed by blocks of transactions.
type Scenario struct {
	Classes []ScenarioClass   `json:"classes"`
	Genesis []GenesisContract `json:"genesis"`
	Blocks  []ScenarioBlock   `json:"blocks"`

	dir string
}

// ScenarioClass declares a class either by the name of a builtin program or
// by the path of a class file, relative to the scenario file.
type ScenarioClass struct {
	ClassHash types.ClassHash `json:"class_hash"`
	Builtin   string          `json:"builtin,omitempty"`
	Path      string          `json:"path,omitempty"`
}

// GenesisContract is a contract deployed before the first block. Balance is
// its balance in the ETH fee token.
type GenesisContract struct {
	Address   types.Address   `json:"address"`
	ClassHash types.ClassHash `json:"class_hash"`
	Nonce     felt.Felt       `json:"nonce"`
	Balance   uint64          `json:"balance"`
	Storage   []StorageCell   `json:"storage,omitempty"`
}

type StorageCell struct {
	Key   felt.Felt `json:"key"`
	Value felt.Felt `json:"value"`
}

// ScenarioBlock lists the transactions of one block and the block
// information they are executed with.
type ScenarioBlock struct {
	Number       uint64                `json:"number"`
	Timestamp    uint64                `json:"timestamp"`
	GasPrice     uint64                `json:"gas_price"`
	StrkGasPrice uint64                `json:"strk_gas_price"`
	Sequencer    *types.Address        `json:"sequencer,omitempty"`
	Transactions []ScenarioTransaction `json:"transactions"`
}

// ScenarioTransaction describes a DEPLOY_ACCOUNT or an INVOKE_FUNCTION
// transaction. Fields not used by the type are ignored.
type ScenarioTransaction struct {
	Type      string      `json:"type"`
	Version   felt.Felt   `json:"version"`
	Nonce     felt.Felt   `json:"nonce"`
	MaxFee    uint64      `json:"max_fee"`
	Signature []felt.Felt `json:"signature"`
	// Hash replaces the computed transaction hash if set.
	Hash *felt.Felt `json:"transaction_hash,omitempty"`

	ClassHash           types.ClassHash `json:"class_hash"`
	ContractAddressSalt felt.Felt       `json:"contract_address_salt"`
	ConstructorCalldata []felt.Felt     `json:"constructor_calldata"`

	ContractAddress types.Address `json:"contract_address"`
	EntryPoint      string        `json:"entry_point,omitempty"`
	Calldata        []felt.Felt   `json:"calldata"`
	// Call is encoded into the __execute__ calldata of the account if set.
	Call *ScenarioCall `json:"call,omitempty"`
}

// ScenarioCall is a call an account makes on behalf of its owner.
type ScenarioCall struct {
	To         types.Address `json:"to"`
	EntryPoint string        `json:"entry_point"`
	Calldata   []felt.Felt   `json:"calldata"`
}

func (c *ScenarioCall) encode() []felt.Felt {
	res := []felt.Felt{c.To.Felt, starkhash.SelectorFromName(c.EntryPoint), felt.FromUint64(uint64(len(c.Calldata)))}
	return append(res, c.Calldata...)
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario %v; %w", path, err)
	}
	scenario := &Scenario{dir: filepath.Dir(path)}
	if err := json.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("cannot parse scenario %v; %w", path, err)
	}
	return scenario, nil
}

func (s *Scenario) loadClass(class ScenarioClass) (contractclass.CompiledClass, error) {
	switch {
	case class.Builtin != "" && class.Path != "":
		return nil, fmt.Errorf("class %v has both a builtin and a path", class.ClassHash)
	case class.Builtin != "":
		return vm.BuiltinClass(class.Builtin)
	case class.Path != "":
		path := class.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		return contractclass.LoadClassFile(path)
	}
	return nil, fmt.Errorf("class %v has neither a builtin nor a path", class.ClassHash)
}

// GenesisDiff returns the declared classes and genesis contracts as a
// state diff. Balances are held by the given fee token.
func (s *Scenario) GenesisDiff(feeToken types.Address) (*state.StateDiff, error) {
	diff := state.NewStateDiff()
	for _, class := range s.Classes {
		compiled, err := s.loadClass(class)
		if err != nil {
			return nil, err
		}
		diff.DeclaredClasses[class.ClassHash] = compiled
	}
	for _, contract := range s.Genesis {
		if _, found := diff.DeclaredClasses[contract.ClassHash]; !found {
			return nil, fmt.Errorf("genesis contract %v uses undeclared class %v", contract.Address, contract.ClassHash)
		}
		diff.AddressToClassHash[contract.Address] = contract.ClassHash
		if !contract.Nonce.IsZero() {
			diff.AddressToNonce[contract.Address] = contract.Nonce
		}
		for _, cell := range contract.Storage {
			setStorage(diff, contract.Address, cell.Key, cell.Value)
		}
		if contract.Balance != 0 {
			low, _ := starkhash.Erc20BalanceKeys(contract.Address)
			setStorage(diff, feeToken, low, felt.FromUint64(contract.Balance))
		}
	}
	return diff, nil
}

func setStorage(diff *state.StateDiff, address types.Address, key, value felt.Felt) {
	slots, found := diff.StorageUpdates[address]
	if !found {
		slots = map[felt.Felt]felt.Felt{}
		diff.StorageUpdates[address] = slots
	}
	slots[key] = value
}

// UpdateBlockInfo sets the block information of the given block.
func (b *ScenarioBlock) UpdateBlockInfo(info *txcontext.BlockInfo) {
	info.BlockNumber = b.Number
	info.BlockTimestamp = b.Timestamp
	info.GasPrice = txcontext.GasPrices{
		EthL1GasPrice:  *uint256.NewInt(b.GasPrice),
		StrkL1GasPrice: *uint256.NewInt(b.StrkGasPrice),
	}
	if b.Sequencer != nil {
		info.SequencerAddress = *b.Sequencer
	}
}

// Build creates the described transaction for the given chain.
func (t *ScenarioTransaction) Build(chainID felt.Felt) (transaction.Transaction, error) {
	fields := txcontext.NewDeprecatedAccountTxFields(t.MaxFee)
	switch t.Type {
	case DeployAccountTxType:
		if t.Hash != nil {
			return transaction.NewDeployAccountWithTxHash(t.ClassHash, fields, t.Version, t.Nonce, t.ConstructorCalldata, t.Signature, t.ContractAddressSalt, *t.Hash)
		}
		return transaction.NewDeployAccount(t.ClassHash, fields, t.Version, t.Nonce, t.ConstructorCalldata, t.Signature, t.ContractAddressSalt, chainID)
	case InvokeFunctionTxType:
		selector := starkhash.DefaultEntryPointSelector
		if t.EntryPoint != "" {
			selector = starkhash.SelectorFromName(t.EntryPoint)
		}
		calldata := t.Calldata
		if t.Call != nil {
			calldata = t.Call.encode()
		}
		return transaction.NewInvokeFunction(t.ContractAddress, selector, fields, t.Version, calldata, t.Signature, t.Nonce, chainID)
	}
	return nil, fmt.Errorf("unknown transaction type %q", t.Type)
}
