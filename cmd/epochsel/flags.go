// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"runtime"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/unc-network/epochsel/log"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-9)",
		EnvVar: "EPOCHSEL_VERBOSITY",
	}
	logFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Value:  "terminal",
		Usage:  "log output format (terminal|json|logfmt)",
		EnvVar: "EPOCHSEL_LOG_FORMAT",
	}
	featuresFlag = cli.StringFlag{
		Name:   "features",
		Value:  "default",
		Usage:  "protocol feature schedule, a registered name or a yaml file",
		EnvVar: "EPOCHSEL_FEATURES",
	}

	fixtureFlag = cli.StringFlag{
		Name:  "fixture",
		Usage: "path of the fixture to resolve",
	}
	blockFlag = cli.BoolFlag{
		Name:  "block",
		Usage: "resolve a block summary instead of an epoch",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the full resolved record",
	}
	sampleFlag = cli.Uint64Flag{
		Name:  "sample",
		Usage: "print the sampled producers of the first n heights of the epoch",
	}

	parallelFlag = cli.IntFlag{
		Name:  "parallel",
		Value: runtime.NumCPU(),
		Usage: "number of fixtures resolved concurrently",
	}
	metricsOutFlag = cli.StringFlag{
		Name:  "metrics-out",
		Usage: "write the collected metrics to this file",
	}

	seatsFlag = cli.Uint64Flag{
		Name:  "seats",
		Value: 1,
		Usage: "number of seats to fill",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed",
		Usage: "32 bytes hex seed, zero if not set",
	}
	countFlag = cli.IntFlag{
		Name:  "n",
		Value: 10,
		Usage: "number of items to shuffle",
	}
	legacyFlag = cli.BoolFlag{
		Name:  "legacy",
		Usage: "use the shuffle of the legacy seat selection",
	}
)
