// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/unc-network/epochsel/selection"
	"github.com/unc-network/epochsel/shuffle"
	"github.com/unc-network/epochsel/unc"
)

var thresholdCommand = cli.Command{
	Name:      "threshold",
	Usage:     "find the seat price of a list of pledges",
	ArgsUsage: "<pledge>...",
	Flags:     []cli.Flag{seatsFlag},
	Action: func(ctx *cli.Context) error {
		return runThreshold(os.Stdout, ctx.Args(), ctx.Uint64(seatsFlag.Name))
	},
}

var shuffleCommand = cli.Command{
	Name:  "shuffle",
	Usage: "print the permutation of a seed",
	Flags: []cli.Flag{seedFlag, countFlag, legacyFlag},
	Action: func(ctx *cli.Context) error {
		return runShuffle(os.Stdout, ctx.String(seedFlag.Name), ctx.Int(countFlag.Name), ctx.Bool(legacyFlag.Name))
	},
}

func runThreshold(w io.Writer, args []string, seats unc.NumSeats) error {
	if len(args) == 0 {
		return errors.New("no pledge given")
	}
	pledges := make([]unc.Balance, len(args))
	for i, arg := range args {
		v, err := unc.ParseAmount(arg)
		if err != nil {
			return err
		}
		pledges[i] = *v
	}
	threshold, err := selection.FindThreshold(pledges, seats)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, threshold.Dec())
	return nil
}

func runShuffle(w io.Writer, seedHex string, n int, legacy bool) error {
	if n < 0 {
		return errors.Errorf("invalid count %d", n)
	}
	var seed unc.Bytes32
	if seedHex != "" {
		var err error
		if seed, err = unc.ParseBytes32(seedHex); err != nil {
			return errors.Wrap(err, "--seed")
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if legacy {
		shuffle.LegacyShuffle(seed, perm)
	} else {
		shuffle.Shuffle(seed.Bytes(), perm)
	}

	strs := make([]string, n)
	for i, v := range perm {
		strs[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(w, strings.Join(strs, " "))
	return nil
}
