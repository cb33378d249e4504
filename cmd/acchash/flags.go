// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/vechain/acctstate/accounthash"
	cli "gopkg.in/urfave/cli.v1"
)

// legacy level of log.LevelInfo
const defaultVerbosity = 3

var (
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "path of the YAML or JSON account file",
	}
	fanoutFlag = cli.IntFlag{
		Name:  "fanout",
		Value: accounthash.MerkleFanout,
		Usage: "number of children hashed into each merkle node",
	}
	parallelThresholdFlag = cli.IntFlag{
		Name:  "parallel-threshold",
		Usage: "minimum batch size hashed on worker goroutines (overrides the input file)",
	}
	sortedFlag = cli.BoolFlag{
		Name:  "sorted",
		Usage: "keep the input order instead of sorting accounts by pubkey",
	}
	expectRootFlag = cli.StringFlag{
		Name:  "expect-root",
		Usage: "fail unless the batch root equals this hex digest (overrides the input file)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: defaultVerbosity,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "collect metrics and print them to stderr on exit",
	}
)
