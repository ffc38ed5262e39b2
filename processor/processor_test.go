// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/registry"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker"
	"github.com/vechain/stakeledger/staker/bond"
	"github.com/vechain/stakeledger/token"
)

func id(name string) ledger.Identity {
	return ledger.BytesToIdentity([]byte(name))
}

var (
	programID = id("program")
	mint      = id("mint")
	mintAuth  = id("mint-authority")
	owner     = id("owner")
	alice     = id("alice")
)

type fixture struct {
	db        *lvldb.LevelDB
	proc      *Processor
	clock     *clockwork.FakeClock
	poolID    ledger.Identity
	stakeID   ledger.Identity
	poolVault ledger.Identity
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	proc, err := New(db, registry.New(programID), clock, Options{CacheSize: 16})
	require.NoError(t, err)

	f := &fixture{db: db, proc: proc, clock: clock}
	err = proc.Execute("setup", ledger.NewSigners(owner), func(tx *Tx) error {
		if err := tx.Tokens.CreateMint(mint, mintAuth, 0); err != nil {
			return err
		}
		csID, _, err := tx.Staker.CentralStateAddress()
		if err != nil {
			return err
		}
		if err := tx.Tokens.CreateAccount(id("central-vault"), mint, csID); err != nil {
			return err
		}
		if err := tx.Tokens.MintTo(mint, id("central-vault"), mintAuth, 1_000_000); err != nil {
			return err
		}
		if _, err := tx.Staker.CreateCentralState(1000, mint, owner, id("central-vault")); err != nil {
			return err
		}
		if err := tx.Tokens.CreateAccount(id("owner-dest"), mint, owner); err != nil {
			return err
		}
		if f.poolID, _, err = tx.Staker.PoolAddress(owner, id("owner-dest")); err != nil {
			return err
		}
		f.poolVault = id("pool-vault")
		if err := tx.Tokens.CreateAccount(f.poolVault, mint, f.poolID); err != nil {
			return err
		}
		if _, err := tx.Staker.CreateStakePool(owner, id("owner-dest"), 10, f.poolVault); err != nil {
			return err
		}
		if err := tx.Tokens.CreateAccount(id("alice-tokens"), mint, alice); err != nil {
			return err
		}
		if err := tx.Tokens.MintTo(mint, id("alice-tokens"), mintAuth, 500); err != nil {
			return err
		}
		f.stakeID, err = tx.Staker.CreateStakeAccount(alice, f.poolID)
		return err
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) balance(t *testing.T, acc ledger.Identity) uint64 {
	var amount uint64
	require.NoError(t, f.proc.View(func(tx *Tx) error {
		a, err := tx.Tokens.Account(acc)
		if err != nil {
			return err
		}
		amount = a.Amount
		return nil
	}))
	return amount
}

func TestExecuteCommits(t *testing.T) {
	f := newFixture(t)

	err := f.proc.Execute("stake", ledger.NewSigners(alice), func(tx *Tx) error {
		return tx.Staker.Stake(f.stakeID, id("alice-tokens"), 200)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(300), f.balance(t, id("alice-tokens")))
	assert.Equal(t, uint64(200), f.balance(t, f.poolVault))

	// a processor reopened over the same store sees the committed operation
	reopened, err := New(f.db, registry.New(programID), f.clock, Options{})
	require.NoError(t, err)
	require.NoError(t, reopened.View(func(tx *Tx) error {
		p, err := tx.Staker.StakePool(f.poolID)
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(200), p.TotalStaked)
		return nil
	}))
}

func TestExecuteRevertLeavesNoTrace(t *testing.T) {
	f := newFixture(t)

	// the stake account and pool are updated in memory before the transfer fails
	err := f.proc.Execute("stake", ledger.NewSigners(alice), func(tx *Tx) error {
		return tx.Staker.Stake(f.stakeID, id("alice-tokens"), 1000)
	})
	assert.True(t, errors.Is(err, token.ErrInsufficientFunds))

	require.NoError(t, f.proc.View(func(tx *Tx) error {
		sa, err := tx.Staker.StakeAccount(f.stakeID)
		if err != nil {
			return err
		}
		assert.Zero(t, sa.StakeAmount)
		p, err := tx.Staker.StakePool(f.poolID)
		if err != nil {
			return err
		}
		assert.Zero(t, p.TotalStaked)
		return nil
	}))
	assert.Equal(t, uint64(500), f.balance(t, id("alice-tokens")))
}

func TestExecuteDropsPartialWork(t *testing.T) {
	f := newFixture(t)

	err := f.proc.Execute("batch", ledger.NewSigners(alice), func(tx *Tx) error {
		if err := tx.Staker.Stake(f.stakeID, id("alice-tokens"), 100); err != nil {
			return err
		}
		return tx.Staker.Stake(f.stakeID, id("alice-tokens"), 0)
	})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAmount))
	assert.Equal(t, uint64(500), f.balance(t, id("alice-tokens")))
	assert.Zero(t, f.balance(t, f.poolVault))
}

func TestViewDoesNotCommit(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.proc.View(func(tx *Tx) error {
		return tx.Tokens.MintTo(mint, id("alice-tokens"), mintAuth, 1)
	}))
	assert.Equal(t, uint64(500), f.balance(t, id("alice-tokens")))
}

func TestSignersArePerOperation(t *testing.T) {
	f := newFixture(t)

	err := f.proc.Execute("stake", nil, func(tx *Tx) error {
		return tx.Staker.Stake(f.stakeID, id("alice-tokens"), 100)
	})
	assert.True(t, errors.Is(err, reverts.ErrSignerRequired))

	f.clock.Advance(24 * time.Hour)
	require.NoError(t, f.proc.Execute("crank", nil, func(tx *Tx) error {
		return tx.Staker.CrankStakePool(f.poolID)
	}))
}

func TestParamsReachStaker(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	seller := id("seller")
	proc, err := New(db, registry.New(programID), nil, Options{
		Params: staker.Params{BondSellers: []ledger.Identity{seller}, BondSignerThreshold: 3},
	})
	require.NoError(t, err)

	// no pool exists, so an authorized seller gets past the seller check and fails on the pool
	err = proc.Execute("create-bond", ledger.NewSigners(seller), func(tx *Tx) error {
		_, err := tx.Staker.CreateBond(seller, bondTerms())
		return err
	})
	assert.True(t, errors.Is(err, reverts.ErrDataTypeMismatch))

	err = proc.Execute("create-bond", ledger.NewSigners(alice), func(tx *Tx) error {
		_, err := tx.Staker.CreateBond(alice, bondTerms())
		return err
	})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))
}

func bondTerms() bond.Terms {
	return bond.Terms{
		Owner:           alice,
		TotalAmountSold: 100,
		UnlockPeriod:    1,
		UnlockAmount:    1,
		StakePool:       id("no-pool"),
	}
}
