// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/log"
	"github.com/unc-network/epochsel/selection"
	"github.com/unc-network/epochsel/unc"
)

var logger = log.WithContext("pkg", "epochsel")

var resolveCommand = cli.Command{
	Name:   "resolve",
	Usage:  "resolve the epoch or block described by a fixture",
	Flags:  []cli.Flag{fixtureFlag, blockFlag, dumpFlag, sampleFlag},
	Action: resolveAction,
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// resolution is a resolved epoch or block with the digest of its record.
type resolution struct {
	info    *epoch.Info
	summary *epoch.BlockSummary
	digest  unc.Bytes32
}

func (r *resolution) view() *resolutionView {
	if r.summary != nil {
		return newSummaryView(r.summary, r.digest)
	}
	return newInfoView(r.info, r.digest)
}

func (r *resolution) record() any {
	if r.summary != nil {
		return r.summary
	}
	return r.info
}

// resolveFixture runs the resolution described by f. A fixture carrying a
// block section, or block set, resolves a block summary.
func resolveFixture(features unc.FeatureSchedule, f *fixture, block bool) (*resolution, error) {
	if f.Features != nil {
		features = *f.Features
	}
	cfg, err := f.Config.build()
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	in, err := f.input()
	if err != nil {
		return nil, err
	}
	resolver := selection.New(features)

	if block || f.Block != nil {
		var hashes fixtureBlock
		if f.Block != nil {
			hashes = *f.Block
		}
		prev, err := f.blockInfo()
		if err != nil {
			return nil, err
		}
		summary, err := resolver.ProposalsToBlockSummary(cfg, hashes.ThisHash, hashes.LastHash, f.Seed, prev, in, f.NextVersion)
		if err != nil {
			return nil, err
		}
		digest, err := summary.Digest()
		if err != nil {
			return nil, err
		}
		return &resolution{summary: summary, digest: digest}, nil
	}

	prev, err := f.epochInfo()
	if err != nil {
		return nil, err
	}
	info, err := resolver.ProposalsToEpochInfo(cfg, f.Seed, prev, in, f.NextVersion, f.LastVersion)
	if err != nil {
		return nil, err
	}
	digest, err := info.Digest()
	if err != nil {
		return nil, err
	}
	return &resolution{info: info, digest: digest}, nil
}

func resolveAction(ctx *cli.Context) error {
	path := ctx.String(fixtureFlag.Name)
	if path == "" {
		return errors.New("--fixture is required")
	}
	features, err := selectFeatures(ctx)
	if err != nil {
		return err
	}
	f, err := loadFixture(path)
	if err != nil {
		return err
	}
	res, err := resolveFixture(features, f, ctx.Bool(blockFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "resolve %v", path)
	}
	logger.Info("fixture resolved", "fixture", path, "digest", res.digest.AbbrevString())

	if ctx.Bool(dumpFlag.Name) {
		dumpConfig.Fdump(os.Stdout, res.record())
		return nil
	}
	if err := writeView(os.Stdout, res.view()); err != nil {
		return err
	}
	if n := ctx.Uint64(sampleFlag.Name); n > 0 && res.info != nil {
		return writeSamples(os.Stdout, res.info, n)
	}
	return nil
}

func writeView(w io.Writer, v *resolutionView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSamples prints the block producer and the chunk producer of every
// shard for the first n heights.
func writeSamples(w io.Writer, info *epoch.Info, n uint64) error {
	sampler, err := epoch.NewProducerSampler(info)
	if err != nil {
		return errors.Wrap(err, "sample producers")
	}
	for h := range n {
		bp := info.Validators[sampler.BlockProducer(h)].AccountID
		fmt.Fprintf(w, "height %d: block %v, chunks", h, bp)
		for s := range info.NumShards() {
			id, err := sampler.ChunkProducer(h, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, " %v", info.Validators[id].AccountID)
		}
		fmt.Fprintln(w)
	}
	return nil
}
