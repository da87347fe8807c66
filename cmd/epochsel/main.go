// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// epochsel resolves validator assignments from fixture files and replays
// recorded resolutions.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/unc-network/epochsel/log"
	"github.com/unc-network/epochsel/unc"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func newApp() *cli.App {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
	app.Name = "epochsel"
	app.Usage = "validator set resolution tool"
	app.Flags = []cli.Flag{
		verbosityFlag,
		logFormatFlag,
		featuresFlag,
	}
	app.Before = initLogger
	app.Commands = []cli.Command{
		resolveCommand,
		replayCommand,
		thresholdCommand,
		shuffleCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) error {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	fd := os.Stderr.Fd()
	useColor := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	handler, err := log.NewHandler(ctx.String(logFormatFlag.Name), os.Stderr, &level, useColor)
	if err != nil {
		return errors.Wrap(err, "--log-format")
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// selectFeatures returns the schedule named by --features, either a
// registered name or a yaml file holding a schedule.
func selectFeatures(ctx *cli.Context) (unc.FeatureSchedule, error) {
	name := ctx.GlobalString(featuresFlag.Name)
	if fs, ok := unc.GetFeatures(name); ok {
		return fs, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return unc.FeatureSchedule{}, errors.Errorf("unknown feature schedule %q", name)
	}
	fs := unc.NoFeatures
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return unc.FeatureSchedule{}, errors.Wrapf(err, "decode feature schedule %v", name)
	}
	if err := unc.SetCustomFeatures(name, fs); err != nil {
		return unc.FeatureSchedule{}, err
	}
	return fs, nil
}
