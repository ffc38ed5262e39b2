// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/pool"
)

const day = ledger.SecondsInDay

func newPool(t *testing.T, totals ...uint64) *pool.Pool {
	p := pool.New(1, ledger.Identity{1}, ledger.Identity{2}, 0, ledger.Identity{3}, 0)
	for i, total := range totals {
		p.TotalStaked = total
		require.NoError(t, p.Crank(int64(i+1)*day))
	}
	return p
}

func TestElapsedDays(t *testing.T) {
	assert.Equal(t, uint64(0), ElapsedDays(0, 0))
	assert.Equal(t, uint64(0), ElapsedDays(day-1, 0))
	assert.Equal(t, uint64(1), ElapsedDays(day, 0))
	assert.Equal(t, uint64(2), ElapsedDays(5*day+day/2, 3*day))
	assert.Equal(t, uint64(365), ElapsedDays(400*day, 0))
	assert.Equal(t, uint64(0), ElapsedDays(0, day))
}

func TestShareVectors(t *testing.T) {
	// 50000/10000*80/100*200/1000 truncates to zero
	got, err := Share(checked.FromUint64(50_000), 10_000, ledger.StakerMultiplier, 200, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	got, err = Share(checked.FromUint64(1_000_000), 1000, ledger.StakerMultiplier, 200, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(160), got)

	got, err = Share(checked.FromUint64(1_000_000), 1000, ledger.StakerMultiplier, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(800), got)
}

func TestShareErrors(t *testing.T) {
	agg := checked.FromUint64(1_000)

	_, err := Share(agg, 0, ledger.StakerMultiplier, 1, 1)
	assert.True(t, errors.Is(err, reverts.ErrOverflow), "zero supply")

	_, err = Share(agg, 1, ledger.StakerMultiplier, 1, 0)
	assert.True(t, errors.Is(err, reverts.ErrOverflow), "zero pool total")

	_, err = Share(checked.U128{}, 1, ledger.StakerMultiplier, 0, 0)
	assert.True(t, errors.Is(err, reverts.ErrOverflow), "empty pool")

	got, err := Share(agg, 1, ledger.StakerMultiplier, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, got, "zero stake")

	big, err := checked.FromUint64(math.MaxUint64).Add(checked.FromUint64(1))
	require.NoError(t, err)
	_, err = Share(big, 1, 100, math.MaxUint64, 1)
	assert.True(t, errors.Is(err, reverts.ErrOverflow), "downcast")
}

func TestAggregate(t *testing.T) {
	p := newPool(t, 100, 200, 300)

	agg, err := Aggregate(p, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, "5000", agg.String())

	// only three days were ever cranked
	agg, err = Aggregate(p, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, "6000", agg.String())

	agg, err = Aggregate(p, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "0", agg.String())
}

func TestAggregateWraparound(t *testing.T) {
	totals := make([]uint64, 366)
	for i := range totals {
		totals[i] = uint64(i + 1)
	}
	p := newPool(t, totals...)

	// days 2..366 remain, day 1 is gone
	agg, err := Aggregate(p, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, "67160", agg.String())
}

func TestAggregateOverflow(t *testing.T) {
	p := newPool(t, 0)
	huge, err := checked.FromUint64(math.MaxUint64).MulUint64(math.MaxUint64)
	require.NoError(t, err)
	p.Balances[0] = huge

	_, err = Aggregate(p, 2, 1)
	assert.True(t, errors.Is(err, reverts.ErrOverflow))
}

func TestStakerRewardIdempotent(t *testing.T) {
	p := newPool(t, 1000, 1000, 1000)
	now := 3 * day

	reward, err := StakerReward(p, 1_000_000, 1_000_000, 500, 0, now)
	require.NoError(t, err)
	// 3 days * 1000 * 1e6 / 1e6 * 80 / 100 * 500 / 1000
	assert.Equal(t, uint64(1200), reward)

	reward, err = StakerReward(p, 1_000_000, 1_000_000, 500, now, now)
	require.NoError(t, err)
	assert.Zero(t, reward)
}

func TestOwnerReward(t *testing.T) {
	p := newPool(t, 1000, 1000)
	reward, err := OwnerReward(p, 1_000_000, 1_000_000, 2*day)
	require.NoError(t, err)
	// 2 days * 1000 * 20 / 100
	assert.Equal(t, uint64(400), reward)
}

// Stakers together never receive more than their share of the issued inflation.
func TestRewardsBounded(t *testing.T) {
	f := fuzz.NewWithSeed(11)

	for i := 0; i < 200; i++ {
		var inflation, supply uint16
		var stakes [4]uint16
		f.Fuzz(&inflation)
		f.Fuzz(&supply)
		f.Fuzz(&stakes)

		var total uint64
		for _, s := range stakes {
			total += uint64(s)
		}
		if total == 0 {
			continue
		}
		p := newPool(t, total, total, total)
		sup := uint64(supply) + 1

		agg, err := Aggregate(p, uint64(inflation), 3)
		require.NoError(t, err)
		issued, err := agg.DivUint64(sup)
		require.NoError(t, err)
		bound, err := issued.Uint64()
		require.NoError(t, err)

		var paid uint64
		for _, s := range stakes {
			r, err := StakerReward(p, uint64(inflation), sup, uint64(s), 0, 3*day)
			require.NoError(t, err)
			paid += r
		}
		owner, err := OwnerReward(p, uint64(inflation), sup, 3*day)
		require.NoError(t, err)

		assert.LessOrEqual(t, paid, bound*ledger.StakerMultiplier/100)
		assert.LessOrEqual(t, paid+owner, bound)
	}
}
