// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/api/accounts"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/processor"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/bond"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "stakeledger",
		Usage:   "Token staking and bonded sale ledger",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			verbosityFlag,
			logJSONFlag,
			nowFlag,
			signerFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Commands: []cli.Command{
			{
				Name:      "create-mint",
				Usage:     "register a token mint",
				ArgsUsage: "<mint> <authority> <decimals>",
				Action:    createMintAction,
			},
			{
				Name:      "create-token-account",
				Usage:     "open an empty token account",
				ArgsUsage: "<account> <mint> <owner>",
				Action:    createTokenAccountAction,
			},
			{
				Name:      "mint-to",
				Usage:     "issue new tokens into an account",
				ArgsUsage: "<mint> <account> <authority> <amount>",
				Action:    mintToAction,
			},
			{
				Name:      "set-token-owner",
				Usage:     "hand a token account over to a new owner",
				ArgsUsage: "<account> <owner> <new-owner>",
				Action:    setTokenOwnerAction,
			},
			{
				Name:      "init",
				Usage:     "create the central state",
				ArgsUsage: "<daily-inflation> <mint> <authority> <central-vault>",
				Action:    initAction,
			},
			{
				Name:      "set-inflation",
				Usage:     "change the daily inflation",
				ArgsUsage: "<authority> <daily-inflation>",
				Action:    setInflationAction,
			},
			{
				Name:      "address",
				Usage:     "derive the identity of a ledger account",
				ArgsUsage: "central-state | pool <owner> <rewards-destination> | stake-account <owner> <pool> | bond <owner> <amount-sold>",
				Action:    addressAction,
			},
			{
				Name:      "create-pool",
				Usage:     "open a stake pool",
				ArgsUsage: "<owner> <rewards-destination> <minimum> <vault>",
				Action:    createPoolAction,
			},
			{
				Name:      "change-pool-minimum",
				Usage:     "set the minimum stake of new stake accounts",
				ArgsUsage: "<pool> <owner> <minimum>",
				Action:    changePoolMinimumAction,
			},
			{
				Name:      "crank",
				Usage:     "record the current stake of a pool",
				ArgsUsage: "<pool>",
				Action:    crankAction,
			},
			{
				Name:      "close-pool",
				Usage:     "delete an empty pool",
				ArgsUsage: "<pool> <owner>",
				Action:    closePoolAction,
			},
			{
				Name:      "claim-pool-rewards",
				Usage:     "pay the owner share of a pool",
				ArgsUsage: "<pool> <owner>",
				Action:    claimPoolRewardsAction,
			},
			{
				Name:      "create-stake-account",
				Usage:     "open a stake account in a pool",
				ArgsUsage: "<owner> <pool>",
				Action:    createStakeAccountAction,
			},
			{
				Name:      "stake",
				Usage:     "move tokens into a stake account",
				ArgsUsage: "<stake-account> <source> <amount>",
				Action:    stakeAction,
			},
			{
				Name:      "unstake",
				Usage:     "move staked tokens back out",
				ArgsUsage: "<stake-account> <destination> <amount>",
				Action:    unstakeAction,
			},
			{
				Name:      "claim-rewards",
				Usage:     "pay the rewards of a stake account",
				ArgsUsage: "<stake-account> <destination>",
				Action:    claimRewardsAction,
			},
			{
				Name:      "close-stake-account",
				Usage:     "delete an empty stake account",
				ArgsUsage: "<stake-account>",
				Action:    closeStakeAccountAction,
			},
			{
				Name:      "create-bond",
				Usage:     "record a bonded sale",
				ArgsUsage: "<seller>",
				Flags: []cli.Flag{
					bondOwnerFlag,
					bondAmountSoldFlag,
					bondQuoteAmountFlag,
					bondQuoteMintFlag,
					bondSellerAccountFlag,
					bondUnlockStartFlag,
					bondUnlockPeriodFlag,
					bondUnlockAmountFlag,
					bondPoolFlag,
				},
				Action: createBondAction,
			},
			{
				Name:      "sign-bond",
				Usage:     "co-sign a bond",
				ArgsUsage: "<bond> <seller>",
				Action:    signBondAction,
			},
			{
				Name:      "claim-bond",
				Usage:     "pay for a bond and activate it",
				ArgsUsage: "<bond> <source>",
				Action:    claimBondAction,
			},
			{
				Name:      "unlock-bond",
				Usage:     "release the vested part of a bond",
				ArgsUsage: "<bond> <destination>",
				Action:    unlockBondAction,
			},
			{
				Name:      "claim-bond-rewards",
				Usage:     "pay the rewards of a bond",
				ArgsUsage: "<bond> <destination>",
				Action:    claimBondRewardsAction,
			},
			{
				Name:      "close-bond",
				Usage:     "delete a fully unlocked bond",
				ArgsUsage: "<bond>",
				Action:    closeBondAction,
			},
			{
				Name:      "show",
				Usage:     "print a ledger account",
				ArgsUsage: "central-state | pools <id> | stake-accounts <id> | bonds <id> | tokens <id>",
				Action:    showAction,
			},
			{
				Name:   "serve",
				Usage:  "serve the read only API",
				Flags:  []cli.Flag{apiAddrFlag, apiCorsFlag},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createMintAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	mint, authority, decimals := a.identity(0), a.identity(1), a.uint64(2)
	if a.err == nil && decimals > 255 {
		return errors.Errorf("decimals %d out of range", decimals)
	}
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Tokens.CreateMint(mint, authority, uint8(decimals))
	})
}

func createTokenAccountAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	account, mint, owner := a.identity(0), a.identity(1), a.identity(2)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Tokens.CreateAccount(account, mint, owner)
	})
}

func mintToAction(ctx *cli.Context) error {
	a := newArgs(ctx, 4)
	mint, account, authority, amount := a.identity(0), a.identity(1), a.identity(2), a.uint64(3)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Tokens.MintTo(mint, account, authority, amount)
	})
}

func setTokenOwnerAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	account, owner, newOwner := a.identity(0), a.identity(1), a.identity(2)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		if !tx.Signers.IsSigner(owner) {
			return nil, reverts.ErrSignerRequired
		}
		return nil, tx.Tokens.SetOwner(account, owner, newOwner)
	})
}

func initAction(ctx *cli.Context) error {
	a := newArgs(ctx, 4)
	inflation, mint, authority, vault := a.uint64(0), a.identity(1), a.identity(2), a.identity(3)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		id, err := tx.Staker.CreateCentralState(inflation, mint, authority, vault)
		return idResult(id), err
	})
}

func setInflationAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	authority, inflation := a.identity(0), a.uint64(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.ChangeInflation(authority, inflation)
	})
}

func addressAction(ctx *cli.Context) error {
	kind := ctx.Args().First()
	var a *args
	switch kind {
	case "central-state":
		a = newArgs(ctx, 1)
	case "pool", "stake-account", "bond":
		a = newArgs(ctx, 3)
	default:
		return errors.Errorf("unknown account kind %q", kind)
	}
	var (
		first, second ledger.Identity
		amountSold    uint64
	)
	switch kind {
	case "pool", "stake-account":
		first, second = a.identity(1), a.identity(2)
	case "bond":
		first, amountSold = a.identity(1), a.uint64(2)
	}
	return view(ctx, a, func(tx *processor.Tx) (any, error) {
		var (
			id  ledger.Identity
			err error
		)
		switch kind {
		case "central-state":
			id, _, err = tx.Staker.CentralStateAddress()
		case "pool":
			id, _, err = tx.Staker.PoolAddress(first, second)
		case "stake-account":
			id, _, err = tx.Staker.StakeAccountAddress(first, second)
		case "bond":
			id, err = tx.Staker.BondAddress(first, amountSold)
		}
		return idResult(id), err
	})
}

func createPoolAction(ctx *cli.Context) error {
	a := newArgs(ctx, 4)
	owner, dest, minimum, vault := a.identity(0), a.identity(1), a.uint64(2), a.identity(3)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		id, err := tx.Staker.CreateStakePool(owner, dest, minimum, vault)
		return idResult(id), err
	})
}

func changePoolMinimumAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	pool, owner, minimum := a.identity(0), a.identity(1), a.uint64(2)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.ChangePoolMinimum(pool, owner, minimum)
	})
}

func crankAction(ctx *cli.Context) error {
	a := newArgs(ctx, 1)
	pool := a.identity(0)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.CrankStakePool(pool)
	})
}

func closePoolAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	pool, owner := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.CloseStakePool(pool, owner)
	})
}

func claimPoolRewardsAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	pool, owner := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		amount, err := tx.Staker.ClaimPoolRewards(pool, owner)
		return amountResult(amount), err
	})
}

func createStakeAccountAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	owner, pool := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		id, err := tx.Staker.CreateStakeAccount(owner, pool)
		return idResult(id), err
	})
}

func stakeAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	stakeAccount, source, amount := a.identity(0), a.identity(1), a.uint64(2)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.Stake(stakeAccount, source, amount)
	})
}

func unstakeAction(ctx *cli.Context) error {
	a := newArgs(ctx, 3)
	stakeAccount, dest, amount := a.identity(0), a.identity(1), a.uint64(2)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.Unstake(stakeAccount, dest, amount)
	})
}

func claimRewardsAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	stakeAccount, dest := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		amount, err := tx.Staker.ClaimRewards(stakeAccount, dest)
		return amountResult(amount), err
	})
}

func closeStakeAccountAction(ctx *cli.Context) error {
	a := newArgs(ctx, 1)
	stakeAccount := a.identity(0)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.CloseStakeAccount(stakeAccount)
	})
}

func bondTerms(ctx *cli.Context) (bond.Terms, error) {
	var terms bond.Terms
	for _, f := range []struct {
		flag cli.StringFlag
		dst  *ledger.Identity
	}{
		{bondOwnerFlag, &terms.Owner},
		{bondQuoteMintFlag, &terms.QuoteMint},
		{bondSellerAccountFlag, &terms.SellerTokenAccount},
		{bondPoolFlag, &terms.StakePool},
	} {
		id, err := flagIdentity(ctx, f.flag)
		if err != nil {
			return bond.Terms{}, err
		}
		*f.dst = id
	}
	terms.TotalAmountSold = ctx.Uint64(bondAmountSoldFlag.Name)
	terms.TotalQuoteAmount = ctx.Uint64(bondQuoteAmountFlag.Name)
	terms.UnlockStartDate = ctx.Int64(bondUnlockStartFlag.Name)
	terms.UnlockPeriod = ctx.Int64(bondUnlockPeriodFlag.Name)
	terms.UnlockAmount = ctx.Uint64(bondUnlockAmountFlag.Name)
	return terms, nil
}

func createBondAction(ctx *cli.Context) error {
	a := newArgs(ctx, 1)
	seller := a.identity(0)
	terms, err := bondTerms(ctx)
	if err != nil {
		return err
	}
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		id, err := tx.Staker.CreateBond(seller, terms)
		return idResult(id), err
	})
}

func signBondAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	bondID, seller := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.SignBond(bondID, seller)
	})
}

func claimBondAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	bondID, source := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.ClaimBond(bondID, source)
	})
}

func unlockBondAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	bondID, dest := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		amount, err := tx.Staker.UnlockBondTokens(bondID, dest)
		return amountResult(amount), err
	})
}

func claimBondRewardsAction(ctx *cli.Context) error {
	a := newArgs(ctx, 2)
	bondID, dest := a.identity(0), a.identity(1)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		amount, err := tx.Staker.ClaimBondRewards(bondID, dest)
		return amountResult(amount), err
	})
}

func closeBondAction(ctx *cli.Context) error {
	a := newArgs(ctx, 1)
	bondID := a.identity(0)
	return run(ctx, a, func(tx *processor.Tx) (any, error) {
		return nil, tx.Staker.CloseBond(bondID)
	})
}

func showAction(ctx *cli.Context) error {
	kind := ctx.Args().First()
	var (
		a  *args
		id ledger.Identity
	)
	if kind == "central-state" {
		a = newArgs(ctx, 1)
	} else {
		a = newArgs(ctx, 2)
		id = a.identity(1)
	}
	if a.err != nil {
		return a.err
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	view, err := accounts.Lookup(e.proc, kind, id)
	if err != nil {
		return err
	}
	return printJSON(view)
}

func serveAction(ctx *cli.Context) error {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	handler := api.New(e.proc, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  e.cfg.Metrics.Enabled,
	})
	url, stop, err := api.StartServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	logger.Info("API started", "url", url)

	var stopMetrics func() error
	if e.cfg.Metrics.Enabled {
		var metricsURL string
		if metricsURL, stopMetrics, err = api.StartMetricsServer(e.cfg.Metrics.Addr); err != nil {
			stop()
			return err
		}
		logger.Info("metrics started", "url", metricsURL)
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-exit
	logger.Info("exit signal received", "signal", sig)

	if stopMetrics != nil {
		if err := stopMetrics(); err != nil {
			logger.Warn("failed to stop metrics server", "err", err)
		}
	}
	return stop()
}

type idResult ledger.Identity

func (r idResult) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"id":%q}`, ledger.Identity(r).String())), nil
}

type amountResult uint64

func (r amountResult) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%d}`, uint64(r))), nil
}
