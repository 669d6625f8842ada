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
	"os"

	"github.com/urfave/cli/v2"
)

// StarkrunApp data structure
var StarkrunApp = cli.App{
	Name:      "Starkrun",
	Usage:     "executes Starknet transaction scenarios",
	Copyright: "(c) 2024 Fantom Foundation",
	Commands: []*cli.Command{
		&RunScenarioCmd,
		&TraceSummaryCmd,
		&AccountInfoCmd,
	},
}

// main implements the starkrun cli.
func main() {
	if err := StarkrunApp.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
