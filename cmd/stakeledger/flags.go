// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML configuration file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory of the ledger database",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	logJSONFlag = cli.BoolFlag{
		Name:  "log-json",
		Usage: "output logs in JSON format",
	}
	nowFlag = cli.Int64Flag{
		Name:  "now",
		Usage: "unix time the operation runs at, the system time if unset",
	}
	signerFlag = cli.StringSliceFlag{
		Name:  "signer",
		Usage: "identity that authorized the operation, may be repeated",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "metrics service listening address",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}

	bondOwnerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "buyer of the bond",
	}
	bondAmountSoldFlag = cli.Uint64Flag{
		Name:  "amount-sold",
		Usage: "reward tokens sold",
	}
	bondQuoteAmountFlag = cli.Uint64Flag{
		Name:  "quote-amount",
		Usage: "quote tokens the buyer pays",
	}
	bondQuoteMintFlag = cli.StringFlag{
		Name:  "quote-mint",
		Usage: "mint of the quote token",
	}
	bondSellerAccountFlag = cli.StringFlag{
		Name:  "seller-token-account",
		Usage: "quote token account receiving the payment",
	}
	bondUnlockStartFlag = cli.Int64Flag{
		Name:  "unlock-start",
		Usage: "unix time of the first unlock",
	}
	bondUnlockPeriodFlag = cli.Int64Flag{
		Name:  "unlock-period",
		Value: 86400,
		Usage: "seconds between unlocks",
	}
	bondUnlockAmountFlag = cli.Uint64Flag{
		Name:  "unlock-amount",
		Usage: "tokens released per unlock period",
	}
	bondPoolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "stake pool the bond is delegated to",
	}
)
