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

package vm

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Starkrun/contractclass"
	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/starkhash"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/holiman/uint256"
)

// Names of the programs shipped with the runtime.
const (
	Erc20ProgramName                    = "erc20"
	AccountProgramName                  = "account"
	AccountWithoutValidationProgramName = "account_without_validation"
	MaliciousAccountProgramName         = "malicious_account"
)

var (
	ErrInvalidCalldata     = errors.New("invalid calldata")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSignature    = errors.New("invalid signature")
)

var (
	TransferEventKey = starkhash.SelectorFromName("Transfer")

	publicKeyVariable = starkhash.SelectorFromName("Account_public_key")
	targetVariable    = starkhash.SelectorFromName("Malicious_target")

	maxUint128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)
)

// NewDefaultRegistry returns a registry holding all programs shipped with the
// runtime.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Erc20ProgramName, Erc20Program())
	r.Register(AccountProgramName, AccountProgram())
	r.Register(AccountWithoutValidationProgramName, AccountWithoutValidationProgram())
	r.Register(MaliciousAccountProgramName, MaliciousAccountProgram())
	return r
}

// BuiltinClass returns the class of a program shipped with the runtime.
func BuiltinClass(name string) (contractclass.CompiledClass, error) {
	switch name {
	case Erc20ProgramName:
		return Erc20Class(), nil
	case AccountProgramName:
		return AccountClass(), nil
	case AccountWithoutValidationProgramName:
		return AccountWithoutValidationClass(), nil
	case MaliciousAccountProgramName:
		return MaliciousAccountClass(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
}

func entryPoints(selectors ...felt.Felt) []contractclass.EntryPoint {
	res := make([]contractclass.EntryPoint, 0, len(selectors))
	for i, selector := range selectors {
		res = append(res, contractclass.EntryPoint{Selector: selector, Offset: uint64(i)})
	}
	return res
}

// sierraMarker stands in for the Sierra program of natively implemented
// classes.
func sierraMarker(name string) []felt.Felt {
	return []felt.Felt{felt.MustFromShortString(name)}
}

func Erc20Class() *contractclass.DeprecatedClass {
	return &contractclass.DeprecatedClass{
		Program: Erc20ProgramName,
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External:    entryPoints(starkhash.TransferSelector, starkhash.BalanceOfSelector),
			contractclass.L1Handler:   {},
			contractclass.Constructor: entryPoints(starkhash.ConstructorSelector),
		},
	}
}

// Erc20Program is a minimal fee token. Its constructor mints the initial
// supply to a recipient.
func Erc20Program() Program {
	return Program{
		starkhash.ConstructorSelector: erc20Constructor,
		starkhash.TransferSelector:    erc20Transfer,
		starkhash.BalanceOfSelector:   erc20BalanceOf,
	}
}

func erc20Constructor(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
	if len(calldata) != 3 {
		return nil, fmt.Errorf("%w: constructor expects recipient and amount, got %d values", ErrInvalidCalldata, len(calldata))
	}
	amount, err := toUint256(calldata[1], calldata[2])
	if err != nil {
		return nil, err
	}
	recipient := types.NewAddress(calldata[0])
	if err := writeBalance(sys, recipient, amount); err != nil {
		return nil, err
	}
	return nil, nil
}

func erc20Transfer(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
	if len(calldata) != 3 {
		return nil, fmt.Errorf("%w: transfer expects recipient and amount, got %d values", ErrInvalidCalldata, len(calldata))
	}
	if err := sys.ConsumeSteps(120); err != nil {
		return nil, err
	}
	if err := sys.UseBuiltin(txcontext.RangeCheckBuiltin, 4); err != nil {
		return nil, err
	}
	amount, err := toUint256(calldata[1], calldata[2])
	if err != nil {
		return nil, err
	}
	sender := sys.GetCallerAddress()
	recipient := types.NewAddress(calldata[0])

	senderBalance, err := readBalance(sys, sender)
	if err != nil {
		return nil, err
	}
	if senderBalance.Lt(&amount) {
		return nil, fmt.Errorf("%w: %v holds %v, needs %v", ErrInsufficientBalance, sender, senderBalance.Dec(), amount.Dec())
	}
	senderBalance.Sub(&senderBalance, &amount)
	if err := writeBalance(sys, sender, senderBalance); err != nil {
		return nil, err
	}

	recipientBalance, err := readBalance(sys, recipient)
	if err != nil {
		return nil, err
	}
	if _, overflow := recipientBalance.AddOverflow(&recipientBalance, &amount); overflow {
		return nil, fmt.Errorf("%w: balance of %v overflows", ErrInvalidCalldata, recipient)
	}
	if err := writeBalance(sys, recipient, recipientBalance); err != nil {
		return nil, err
	}

	if err := sys.EmitEvent([]felt.Felt{TransferEventKey}, []felt.Felt{sender.Felt, recipient.Felt, calldata[1], calldata[2]}); err != nil {
		return nil, err
	}
	return []felt.Felt{felt.One}, nil
}

func erc20BalanceOf(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
	if len(calldata) != 1 {
		return nil, fmt.Errorf("%w: balanceOf expects an account, got %d values", ErrInvalidCalldata, len(calldata))
	}
	balance, err := readBalance(sys, types.NewAddress(calldata[0]))
	if err != nil {
		return nil, err
	}
	low, high := splitUint256(balance)
	return []felt.Felt{low, high}, nil
}

func toUint256(low, high felt.Felt) (uint256.Int, error) {
	l, h := low.Uint256(), high.Uint256()
	if l.Gt(maxUint128) || h.Gt(maxUint128) {
		return uint256.Int{}, fmt.Errorf("%w: amount words exceed 128 bits", ErrInvalidCalldata)
	}
	var res uint256.Int
	res.Lsh(h, 128)
	res.Or(&res, l)
	return res, nil
}

func splitUint256(v uint256.Int) (low, high felt.Felt) {
	var l, h uint256.Int
	l.And(&v, maxUint128)
	h.Rsh(&v, 128)
	return felt.FromUint256(&l), felt.FromUint256(&h)
}

func readBalance(sys Syscalls, owner types.Address) (uint256.Int, error) {
	if err := sys.UseBuiltin(txcontext.PedersenBuiltin, 1); err != nil {
		return uint256.Int{}, err
	}
	lowKey, highKey := starkhash.Erc20BalanceKeys(owner)
	low, err := sys.StorageRead(lowKey)
	if err != nil {
		return uint256.Int{}, err
	}
	high, err := sys.StorageRead(highKey)
	if err != nil {
		return uint256.Int{}, err
	}
	return toUint256(low, high)
}

func writeBalance(sys Syscalls, owner types.Address, balance uint256.Int) error {
	if err := sys.UseBuiltin(txcontext.PedersenBuiltin, 1); err != nil {
		return err
	}
	lowKey, highKey := starkhash.Erc20BalanceKeys(owner)
	low, high := splitUint256(balance)
	if err := sys.StorageWrite(lowKey, low); err != nil {
		return err
	}
	return sys.StorageWrite(highKey, high)
}

func AccountClass() *contractclass.CasmClass {
	return &contractclass.CasmClass{
		Program: AccountProgramName,
		EntryPointsByType: contractclass.CasmEntryPoints{
			External: entryPoints(
				starkhash.ValidateDeploySelector,
				starkhash.ValidateDeclareSelector,
				starkhash.ValidateSelector,
				starkhash.ExecuteSelector,
			),
			L1Handler:   []contractclass.EntryPoint{},
			Constructor: entryPoints(starkhash.ConstructorSelector),
		},
		SierraProgram: sierraMarker(AccountProgramName),
	}
}

// AccountProgram is an account owned by a public key set in its
// constructor. It accepts transactions signed with exactly that key.
func AccountProgram() Program {
	validate := func(sys Syscalls, _ []felt.Felt) ([]felt.Felt, error) {
		if err := checkSignature(sys); err != nil {
			return nil, err
		}
		return []felt.Felt{starkhash.ValidRetdata}, nil
	}
	return Program{
		starkhash.ConstructorSelector:     accountConstructor,
		starkhash.ValidateDeploySelector:  validate,
		starkhash.ValidateDeclareSelector: validate,
		starkhash.ValidateSelector:        validate,
		starkhash.ExecuteSelector:         accountExecute,
	}
}

func accountConstructor(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
	if len(calldata) != 1 {
		return nil, fmt.Errorf("%w: constructor expects a public key, got %d values", ErrInvalidCalldata, len(calldata))
	}
	return nil, sys.StorageWrite(publicKeyVariable, calldata[0])
}

func checkSignature(sys Syscalls) error {
	if err := sys.UseBuiltin(txcontext.EcdsaBuiltin, 1); err != nil {
		return err
	}
	publicKey, err := sys.StorageRead(publicKeyVariable)
	if err != nil {
		return err
	}
	signature := sys.GetTxInfo().Signature
	if len(signature) != 1 || signature[0] != publicKey {
		return fmt.Errorf("%w for account %v", ErrInvalidSignature, sys.GetContractAddress())
	}
	return nil
}

// accountExecute forwards a single call encoded as
// [to, selector, calldata length, calldata...].
func accountExecute(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
	if len(calldata) < 3 || !calldata[2].IsUint64() || calldata[2].Uint64() != uint64(len(calldata)-3) {
		return nil, fmt.Errorf("%w: malformed call", ErrInvalidCalldata)
	}
	return sys.CallContract(types.NewAddress(calldata[0]), calldata[1], calldata[3:])
}

func AccountWithoutValidationClass() *contractclass.DeprecatedClass {
	return &contractclass.DeprecatedClass{
		Program: AccountWithoutValidationProgramName,
		EntryPointsByType: map[contractclass.EntryPointType][]contractclass.EntryPoint{
			contractclass.External: entryPoints(
				starkhash.ValidateDeploySelector,
				starkhash.ValidateDeclareSelector,
				starkhash.ValidateSelector,
				starkhash.ExecuteSelector,
			),
			contractclass.L1Handler:   {},
			contractclass.Constructor: {},
		},
	}
}

// AccountWithoutValidationProgram is a legacy account without constructor
// which accepts every transaction.
func AccountWithoutValidationProgram() Program {
	accept := func(Syscalls, []felt.Felt) ([]felt.Felt, error) {
		return nil, nil
	}
	return Program{
		starkhash.ValidateDeploySelector:  accept,
		starkhash.ValidateDeclareSelector: accept,
		starkhash.ValidateSelector:        accept,
		starkhash.ExecuteSelector:         accountExecute,
	}
}

func MaliciousAccountClass() *contractclass.CasmClass {
	class := AccountClass()
	class.Program = MaliciousAccountProgramName
	class.SierraProgram = sierraMarker(MaliciousAccountProgramName)
	return class
}

// MaliciousAccountProgram is an account whose validation queries the
// balance it holds at the token set in its constructor.
func MaliciousAccountProgram() Program {
	validate := func(sys Syscalls, _ []felt.Felt) ([]felt.Felt, error) {
		target, err := sys.StorageRead(targetVariable)
		if err != nil {
			return nil, err
		}
		if _, err := sys.CallContract(types.NewAddress(target), starkhash.BalanceOfSelector, []felt.Felt{sys.GetContractAddress().Felt}); err != nil {
			return nil, err
		}
		return []felt.Felt{starkhash.ValidRetdata}, nil
	}
	return Program{
		starkhash.ConstructorSelector: func(sys Syscalls, calldata []felt.Felt) ([]felt.Felt, error) {
			if len(calldata) != 1 {
				return nil, fmt.Errorf("%w: constructor expects a token, got %d values", ErrInvalidCalldata, len(calldata))
			}
			return nil, sys.StorageWrite(targetVariable, calldata[0])
		},
		starkhash.ValidateDeploySelector:  validate,
		starkhash.ValidateDeclareSelector: validate,
		starkhash.ValidateSelector:        validate,
		starkhash.ExecuteSelector:         accountExecute,
	}
}
