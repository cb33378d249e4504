// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// acchash computes the digests of an account set and folds them into the batch root.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/acctstate/accounthash"
	"github.com/vechain/acctstate/metrics"
	"github.com/vechain/acctstate/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "acchash"
	app.Usage = "Account hashing and batch root tool"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		inputFlag,
		fanoutFlag,
		parallelThresholdFlag,
		sortedFlag,
		expectRootFlag,
		verbosityFlag,
		jsonLogsFlag,
		metricsFlag,
	}
	app.Action = run
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	lvl := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))
	w := ctx.App.ErrWriter

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(w, lvl)
	} else {
		useColor := false
		if f, ok := w.(*os.File); ok {
			useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
		}
		handler = log.NewTerminalHandlerWithLevel(w, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func run(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.Bool(metricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		defer func() {
			if err := metrics.WriteText(ctx.App.ErrWriter); err != nil {
				log.Warn("failed to write metrics", "err", err)
			}
		}()
	}

	path := ctx.String(inputFlag.Name)
	if path == "" {
		return errors.New("missing --input")
	}
	input, err := loadInput(path)
	if err != nil {
		return err
	}

	cfg := input.Config
	if ctx.IsSet(parallelThresholdFlag.Name) {
		cfg.HashParallelThreshold = ctx.Int(parallelThresholdFlag.Name)
	}
	thor.SetConfig(cfg)
	log.Debug("config applied", "hashParallelThreshold", thor.HashParallelThreshold())

	expected := input.ExpectedRoot
	if ctx.IsSet(expectRootFlag.Name) {
		root, err := thor.ParseBytes32(ctx.String(expectRootFlag.Name))
		if err != nil {
			return errors.Wrap(err, "parse --expect-root")
		}
		expected = &root
	}

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	pairs, err := accounthash.HashAccountsContext(exitCtx, input.entries())
	if err != nil {
		return errors.Wrap(err, "hash accounts")
	}
	log.Debug("accounts hashed", "count", len(pairs), "elapsed", time.Since(start))

	if !ctx.Bool(sortedFlag.Name) {
		accounthash.SortPairs(pairs)
	}
	root, err := accounthash.ComputeMerkleRoot(pairs, ctx.Int(fanoutFlag.Name))
	if err != nil {
		return errors.Wrap(err, "compute root")
	}

	w := ctx.App.Writer
	for _, p := range pairs {
		fmt.Fprintf(w, "%v %v\n", p.Pubkey, p.Hash)
	}
	fmt.Fprintf(w, "root %v\n", root)

	log.Info("batch root computed", "accounts", len(pairs), "root", root.AbbrevString(), "elapsed", time.Since(start))
	if expected != nil && *expected != root {
		return errors.Errorf("root mismatch: expected %v, got %v", *expected, root)
	}
	return nil
}
