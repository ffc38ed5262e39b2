// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/processor"
	"github.com/vechain/stakeledger/staker"
)

// DefaultProgramID is the program the ledger accounts are derived from when none is configured.
var DefaultProgramID = ledger.MustParseIdentity("Stake11111111111111111111111111111111111111")

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Bond struct {
	Sellers         []ledger.Identity `yaml:"sellers"`
	SignerThreshold uint64            `yaml:"signer_threshold"`
}

// Config is the configuration of the command line tool.
type Config struct {
	ProgramID ledger.Identity `yaml:"program_id"`
	DataDir   string          `yaml:"data_dir"`
	CacheSize int             `yaml:"cache_size"`
	Verbosity int             `yaml:"verbosity"`
	LogJSON   bool            `yaml:"log_json"`
	Metrics   Metrics         `yaml:"metrics"`
	Bond      Bond            `yaml:"bond"`
}

// Default returns the configuration used for unset values.
func Default() *Config {
	return &Config{
		ProgramID: DefaultProgramID,
		DataDir:   "stakeledger-data",
		CacheSize: processor.DefaultCacheSize,
		Verbosity: 3,
		Metrics: Metrics{
			Addr: "localhost:2112",
		},
		Bond: Bond{
			SignerThreshold: ledger.BondSignerThreshold,
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %v", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %v", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ProgramID.IsZero() {
		return errors.New("program_id is required")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.Bond.SignerThreshold == 0 {
		return errors.New("bond.signer_threshold must be positive")
	}
	if c.Bond.SignerThreshold > uint64(len(c.Bond.Sellers)) && len(c.Bond.Sellers) > 0 {
		return errors.Errorf("bond.signer_threshold %d above the %d configured sellers", c.Bond.SignerThreshold, len(c.Bond.Sellers))
	}
	return nil
}

// Params returns the staker parameters of c.
func (c *Config) Params() staker.Params {
	return staker.Params{
		BondSellers:         c.Bond.Sellers,
		BondSignerThreshold: c.Bond.SignerThreshold,
	}
}
