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

package main

import (
	"fmt"
	"io"

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/Fantom-foundation/Starkrun/logger"
	"github.com/Fantom-foundation/Starkrun/state"
	"github.com/Fantom-foundation/Starkrun/txcontext"
	"github.com/Fantom-foundation/Starkrun/types"
	"github.com/Fantom-foundation/Starkrun/utils"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var AccountInfoCmd = cli.Command{
	Action:    AccountInfo,
	Name:      "account",
	Usage:     "Provides information about an account of a persistent state",
	ArgsUsage: "<address>",
	Flags: []cli.Flag{
		&utils.StateDbFlag,
		&utils.StateDbCacheFlag,
		&utils.ChainFlag,
		&logger.LogLevelFlag,
	},
}

// AccountInfo prints class, nonce and fee token balances of an account.
func AccountInfo(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("starkrun account command requires exactly 1 argument")
	}
	address, err := felt.FromString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid address %q; %w", ctx.Args().First(), err)
	}

	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.StateDb == "" {
		return fmt.Errorf("--%v is required", utils.StateDbFlag.Name)
	}

	store, err := state.OpenLevelDbStore(cfg.StateDb, int(cfg.StateDbCacheSize.Bytes()))
	if err != nil {
		return err
	}
	defer store.Close()

	return printAccountInfo(ctx.App.Writer, store, cfg.BlockContext(), types.NewAddress(address))
}

func printAccountInfo(w io.Writer, reader state.StateReader, blockContext *txcontext.BlockContext, address types.Address) error {
	s := state.NewCachedState(reader, state.NewPermanentContractClassCache())
	bold := color.New(color.Bold).SprintfFunc()

	hash, err := s.GetClassHashAt(address)
	if err != nil {
		return err
	}
	if hash.IsZero() {
		return fmt.Errorf("no contract deployed at %v", address)
	}
	nonce, err := s.GetNonceAt(address)
	if err != nil {
		return err
	}

	output(w, "Account:\t%s\n", bold(address.String()))
	output(w, "Class Hash:\t%s\n", bold(hash.String()))
	output(w, "Nonce:\t\t%s\n", bold("%d", nonce.Uint64()))

	for _, feeType := range []txcontext.FeeType{txcontext.Eth, txcontext.Strk} {
		low, high, err := s.GetFeeTokenBalance(blockContext, address, feeType)
		if err != nil {
			return err
		}
		balance := low.Uint256()
		if !high.IsZero() {
			hi := high.Uint256()
			balance.Add(balance, hi.Lsh(hi, 128))
		}
		output(w, "%v Balance:\t%s\n", feeType, bold(formatFee(balance)))
	}
	return nil
}

func output(w io.Writer, format string, a ...any) {
	if _, err := fmt.Fprintf(w, format, a...); err != nil {
		fmt.Println("output error", err.Error())
	}
}
