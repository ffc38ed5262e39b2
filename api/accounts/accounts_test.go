// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/processor"
	"github.com/vechain/stakeledger/registry"
)

func id(name string) ledger.Identity {
	return ledger.BytesToIdentity([]byte(name))
}

var (
	mint     = id("mint")
	mintAuth = id("mint-authority")
	owner    = id("owner")
	alice    = id("alice")
)

type testServer struct {
	*httptest.Server
	clock   *clockwork.FakeClock
	proc    *processor.Processor
	poolID  ledger.Identity
	stakeID ledger.Identity
}

func newTestServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	proc, err := processor.New(db, registry.New(id("program")), clock, processor.Options{})
	require.NoError(t, err)

	ts := &testServer{clock: clock, proc: proc}
	require.NoError(t, proc.Execute("setup", ledger.NewSigners(owner, alice), func(tx *processor.Tx) error {
		csID, _, err := tx.Staker.CentralStateAddress()
		if err != nil {
			return err
		}
		if ts.poolID, _, err = tx.Staker.PoolAddress(owner, id("owner-dest")); err != nil {
			return err
		}
		for _, step := range []func() error{
			func() error { return tx.Tokens.CreateMint(mint, mintAuth, 0) },
			func() error { return tx.Tokens.CreateAccount(id("central-vault"), mint, csID) },
			func() error { return tx.Tokens.MintTo(mint, id("central-vault"), mintAuth, 999_000) },
			func() error { return tx.Tokens.CreateAccount(id("owner-dest"), mint, owner) },
			func() error { return tx.Tokens.CreateAccount(id("pool-vault"), mint, ts.poolID) },
			func() error { return tx.Tokens.CreateAccount(id("alice-tokens"), mint, alice) },
			func() error { return tx.Tokens.MintTo(mint, id("alice-tokens"), mintAuth, 1000) },
			func() error {
				_, err := tx.Staker.CreateCentralState(1_000_000, mint, owner, id("central-vault"))
				return err
			},
			func() error {
				_, err := tx.Staker.CreateStakePool(owner, id("owner-dest"), 10, id("pool-vault"))
				return err
			},
			func() error {
				ts.stakeID, err = tx.Staker.CreateStakeAccount(alice, ts.poolID)
				return err
			},
			func() error { return tx.Staker.Stake(ts.stakeID, id("alice-tokens"), 500) },
		} {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	}))

	router := mux.NewRouter()
	New(proc).Mount(router, "/accounts")
	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) get(t *testing.T, path string, v any) int {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if res.StatusCode == http.StatusOK && v != nil {
		require.NoError(t, json.Unmarshal(body, v))
	}
	return res.StatusCode
}

func TestGetCentralState(t *testing.T) {
	ts := newTestServer(t)

	var cs CentralState
	require.Equal(t, http.StatusOK, ts.get(t, "/accounts/central-state", &cs))
	assert.Equal(t, uint64(1_000_000), cs.DailyInflation)
	assert.Equal(t, mint, cs.TokenMint)
	assert.Equal(t, id("central-vault"), cs.CentralVault)
}

func TestGetPool(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 2; i++ {
		ts.clock.Advance(24 * time.Hour)
		require.NoError(t, ts.proc.Execute("crank", nil, func(tx *processor.Tx) error {
			return tx.Staker.CrankStakePool(ts.poolID)
		}))
	}

	var p Pool
	require.Equal(t, http.StatusOK, ts.get(t, "/accounts/pools/"+ts.poolID.String(), &p))
	assert.Equal(t, "StakePool", p.Status)
	assert.Equal(t, uint16(2), p.CurrentDayIdx)
	assert.Equal(t, uint64(500), p.TotalStaked)
	assert.Equal(t, owner, p.Owner)
	assert.Equal(t, []string{"500", "500"}, p.RecentBalances)
}

func TestGetStakeAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.clock.Advance(24 * time.Hour)
	require.NoError(t, ts.proc.Execute("crank", nil, func(tx *processor.Tx) error {
		return tx.Staker.CrankStakePool(ts.poolID)
	}))

	var sa StakeAccount
	require.Equal(t, http.StatusOK, ts.get(t, "/accounts/stake-accounts/"+ts.stakeID.String(), &sa))
	assert.Equal(t, alice, sa.Owner)
	assert.Equal(t, uint64(500), sa.StakeAmount)
	// 500 * 1e6 / 1e6 * 80 / 100 * 500 / 500
	assert.Equal(t, uint64(400), sa.PendingRewards)
}

func TestGetEmptyStakeAccount(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.proc.Execute("unstake", ledger.NewSigners(alice), func(tx *processor.Tx) error {
		return tx.Staker.Unstake(ts.stakeID, id("alice-tokens"), 500)
	}))
	ts.clock.Advance(24 * time.Hour)
	require.NoError(t, ts.proc.Execute("crank", nil, func(tx *processor.Tx) error {
		return tx.Staker.CrankStakePool(ts.poolID)
	}))

	var sa StakeAccount
	require.Equal(t, http.StatusOK, ts.get(t, "/accounts/stake-accounts/"+ts.stakeID.String(), &sa))
	assert.Zero(t, sa.StakeAmount)
	assert.Zero(t, sa.PendingRewards)
}

func TestGetTokenAccount(t *testing.T) {
	ts := newTestServer(t)

	var acc TokenAccount
	require.Equal(t, http.StatusOK, ts.get(t, "/accounts/tokens/"+id("pool-vault").String(), &acc))
	assert.Equal(t, ts.poolID, acc.Owner)
	assert.Equal(t, uint64(500), acc.Amount)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, ts.get(t, "/accounts/pools/"+ts.stakeID.String(), nil))
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/accounts/bonds/"+id("nothing").String(), nil))
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/accounts/tokens/"+id("nothing").String(), nil))
	assert.Equal(t, http.StatusBadRequest, ts.get(t, "/accounts/pools/not-an-identity", nil))
}
