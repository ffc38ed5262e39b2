// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/config"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/processor"
	"github.com/vechain/stakeledger/registry"
)

// loadConfig reads the configuration file, if any, and applies the global flags over it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if ctx.GlobalIsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.GlobalString(dataDirFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(logJSONFlag.Name) {
		cfg.LogJSON = ctx.GlobalBool(logJSONFlag.Name)
	}
	if ctx.GlobalIsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.GlobalBool(enableMetricsFlag.Name)
	}
	if ctx.GlobalIsSet(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = ctx.GlobalString(metricsAddrFlag.Name)
	}
	return cfg, cfg.Validate()
}

func newClock(ctx *cli.Context) clockwork.Clock {
	if ctx.GlobalIsSet(nowFlag.Name) {
		return clockwork.NewFakeClockAt(time.Unix(ctx.GlobalInt64(nowFlag.Name), 0))
	}
	return clockwork.NewRealClock()
}

func parseSigners(ctx *cli.Context) (ledger.Signers, error) {
	var ids []ledger.Identity
	for _, s := range ctx.GlobalStringSlice(signerFlag.Name) {
		id, err := ledger.ParseIdentity(s)
		if err != nil {
			return nil, errors.WithMessagef(err, "signer %q", s)
		}
		ids = append(ids, id)
	}
	return ledger.NewSigners(ids...), nil
}

// env is what every command runs with.
type env struct {
	cfg     *config.Config
	db      *lvldb.LevelDB
	proc    *processor.Processor
	signers ledger.Signers
}

func openEnv(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	log.Setup(os.Stderr, cfg.Verbosity, cfg.LogJSON)
	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
	}

	signers, err := parseSigners(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir at '%v'", cfg.DataDir)
	}
	dir := filepath.Join(cfg.DataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database at '%v'", dir)
	}

	proc, err := processor.New(db, registry.New(cfg.ProgramID), newClock(ctx), processor.Options{
		CacheSize: cfg.CacheSize,
		Params:    cfg.Params(),
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &env{cfg: cfg, db: db, proc: proc, signers: signers}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		logger.Warn("failed to close ledger database", "err", err)
	}
}

// args reads positional arguments, keeping the first error.
type args struct {
	ctx *cli.Context
	err error
}

func newArgs(ctx *cli.Context, n int) *args {
	a := &args{ctx: ctx}
	if ctx.NArg() != n {
		a.err = errors.Errorf("%v expects %d arguments, got %d", ctx.Command.Name, n, ctx.NArg())
	}
	return a
}

func (a *args) identity(i int) ledger.Identity {
	if a.err != nil {
		return ledger.Identity{}
	}
	id, err := ledger.ParseIdentity(a.ctx.Args().Get(i))
	if err != nil {
		a.err = errors.WithMessagef(err, "argument %d", i+1)
	}
	return id
}

func (a *args) uint64(i int) uint64 {
	if a.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(a.ctx.Args().Get(i), 10, 64)
	if err != nil {
		a.err = errors.WithMessagef(err, "argument %d", i+1)
	}
	return v
}

func flagIdentity(ctx *cli.Context, flag cli.StringFlag) (ledger.Identity, error) {
	id, err := ledger.ParseIdentity(ctx.String(flag.Name))
	if err != nil {
		return ledger.Identity{}, errors.WithMessagef(err, "--%v", flag.Name)
	}
	return id, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// run executes op as one operation and prints what it returns.
func run(ctx *cli.Context, a *args, op func(tx *processor.Tx) (any, error)) error {
	if a.err != nil {
		return a.err
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	var result any
	if err := e.proc.Execute(ctx.Command.Name, e.signers, func(tx *processor.Tx) error {
		var err error
		result, err = op(tx)
		return err
	}); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return printJSON(result)
}

// view runs op read only and prints what it returns.
func view(ctx *cli.Context, a *args, op func(tx *processor.Tx) (any, error)) error {
	if a.err != nil {
		return a.err
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	var result any
	if err := e.proc.View(func(tx *processor.Tx) error {
		var err error
		result, err = op(tx)
		return err
	}); err != nil {
		return err
	}
	return printJSON(result)
}
