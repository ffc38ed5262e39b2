// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/ledger"
)

const (
	sellerA = "So11111111111111111111111111111111111111112"
	sellerB = "Stake11111111111111111111111111111111111111"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultProgramID, cfg.ProgramID)
	assert.Equal(t, ledger.BondSignerThreshold, cfg.Params().BondSignerThreshold)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
data_dir: /var/lib/stakeledger
verbosity: 4
log_json: true
metrics:
  enabled: true
  addr: 0.0.0.0:9100
bond:
  sellers:
    - `+sellerA+`
    - `+sellerB+`
  signer_threshold: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultProgramID, cfg.ProgramID, "unset values keep their default")
	assert.Equal(t, "/var/lib/stakeledger", cfg.DataDir)
	assert.Equal(t, 4, cfg.Verbosity)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, Metrics{Enabled: true, Addr: "0.0.0.0:9100"}, cfg.Metrics)

	params := cfg.Params()
	assert.Equal(t, []ledger.Identity{ledger.MustParseIdentity(sellerA), ledger.MustParseIdentity(sellerB)}, params.BondSellers)
	assert.Equal(t, uint64(2), params.BondSignerThreshold)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad identity", "program_id: not-base58!"},
		{"zero threshold", "bond:\n  signer_threshold: 0"},
		{"threshold above sellers", "bond:\n  sellers: [" + sellerA + "]\n  signer_threshold: 2"},
		{"empty data dir", "data_dir: ''"},
		{"not yaml", "verbosity: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
