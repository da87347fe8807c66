// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/unc-network/epochsel/metrics"
	"github.com/unc-network/epochsel/unc"
)

var replayCommand = cli.Command{
	Name:      "replay",
	Usage:     "resolve every fixture of a directory and compare the recorded digests",
	ArgsUsage: "<dir>",
	Flags:     []cli.Flag{parallelFlag, metricsOutFlag},
	Action:    replayAction,
}

// replayResult is the outcome of one fixture.
type replayResult struct {
	path   string
	digest unc.Bytes32
	want   *unc.Bytes32
	err    error
}

func (r *replayResult) failed() bool {
	return r.err != nil || (r.want != nil && *r.want != r.digest)
}

func (r *replayResult) String() string {
	switch {
	case r.err != nil:
		return fmt.Sprintf("%v: %v", r.path, r.err)
	case r.want != nil && *r.want != r.digest:
		return fmt.Sprintf("%v: digest %v, want %v", r.path, r.digest, *r.want)
	default:
		return fmt.Sprintf("%v: %v", r.path, r.digest)
	}
}

func listFixtures(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// replay resolves the fixtures with at most parallel of them in flight.
// Failures of single fixtures are reported in the results, only a canceled
// ctx stops the replay.
func replay(ctx context.Context, features unc.FeatureSchedule, paths []string, parallel int, onDone func()) ([]*replayResult, error) {
	results := make([]*replayResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := &replayResult{path: path}
			results[i] = r
			defer onDone()

			f, err := loadFixture(path)
			if err != nil {
				r.err = err
				return nil
			}
			if f.Expect != nil {
				want := f.Expect.Digest
				r.want = &want
			}
			res, err := resolveFixture(features, f, false)
			if err != nil {
				r.err = err
				return nil
			}
			r.digest = res.digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func replayAction(ctx *cli.Context) error {
	dir := ctx.Args().First()
	if dir == "" {
		return errors.New("fixture directory is required")
	}
	features, err := selectFeatures(ctx)
	if err != nil {
		return err
	}
	paths, err := listFixtures(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.Errorf("no fixture found in %v", dir)
	}

	metricsOut := ctx.String(metricsOutFlag.Name)
	if metricsOut != "" {
		metrics.InitializePrometheusMetrics()
	}

	fmt.Println(">> Replaying fixtures <<")
	bar := pb.New(len(paths)).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	results, err := replay(context.Background(), features, paths, ctx.Int(parallelFlag.Name), func() { bar.Increment() })
	if err != nil {
		return err
	}
	bar.Finish()

	var failed int
	for _, r := range results {
		if r.failed() {
			failed++
			fmt.Println(r)
			continue
		}
		logger.Debug("fixture replayed", "fixture", r.path, "digest", r.digest.AbbrevString())
	}

	if metricsOut != "" {
		if err := writeMetrics(metricsOut); err != nil {
			return errors.Wrap(err, "--metrics-out")
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d fixtures failed", failed, len(results))
	}
	fmt.Printf("%d fixtures replayed\n", len(results))
	return nil
}

func writeMetrics(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return metrics.WriteText(file)
}
