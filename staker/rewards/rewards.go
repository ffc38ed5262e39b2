// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards computes inflation rewards from a pool's balance history.
//
// The aggregate of a claim window is the sum, over the cranked days of the
// window, of the recorded pool balance times the daily inflation. A claimant
// receives
//
//	aggregate / supply * multiplier / 100 * stake / pool total
//
// evaluated left to right in 128 bits, each division truncating.
package rewards

import (
	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staker/pool"
)

// ElapsedDays returns the whole days between lastClaimed and now, at most
// the length of the balance history.
func ElapsedDays(now, lastClaimed int64) uint64 {
	days := checked.Elapsed(now, lastClaimed) / uint64(ledger.SecondsInDay)
	return min(days, ledger.StakeBufferLen)
}

// Aggregate sums balance times dailyInflation over the last days cranked slots.
// Days beyond the cranked history contribute nothing.
func Aggregate(p *pool.Pool, dailyInflation uint64, days uint64) (checked.U128, error) {
	current := uint64(p.CurrentDayIdx)
	window := min(days, ledger.StakeBufferLen, current)

	var sum checked.U128
	for i := uint64(1); i <= window; i++ {
		weighted, err := p.Balance(current - i).MulUint64(dailyInflation)
		if err != nil {
			return checked.U128{}, err
		}
		if sum, err = sum.Add(weighted); err != nil {
			return checked.U128{}, err
		}
	}
	return sum, nil
}

// Share normalizes aggregate into the claimant's part. A zero supply or
// pool total fails with ErrOverflow.
func Share(aggregate checked.U128, supply, multiplier, stake, poolTotal uint64) (uint64, error) {
	v, err := aggregate.DivUint64(supply)
	if err != nil {
		return 0, err
	}
	if v, err = v.MulUint64(multiplier); err != nil {
		return 0, err
	}
	if v, err = v.DivUint64(100); err != nil {
		return 0, err
	}
	if v, err = v.MulUint64(stake); err != nil {
		return 0, err
	}
	if v, err = v.DivUint64(poolTotal); err != nil {
		return 0, err
	}
	return v.Uint64()
}

// StakerReward returns the reward of stake staked in p since lastClaimed.
func StakerReward(p *pool.Pool, dailyInflation, supply, stake uint64, lastClaimed, now int64) (uint64, error) {
	agg, err := Aggregate(p, dailyInflation, ElapsedDays(now, lastClaimed))
	if err != nil {
		return 0, err
	}
	return Share(agg, supply, ledger.StakerMultiplier, stake, p.TotalStaked)
}

// OwnerReward returns the pool owner's reward since the pool was last claimed.
func OwnerReward(p *pool.Pool, dailyInflation, supply uint64, now int64) (uint64, error) {
	agg, err := Aggregate(p, dailyInflation, ElapsedDays(now, p.LastClaimedTime))
	if err != nil {
		return 0, err
	}
	v, err := agg.DivUint64(supply)
	if err != nil {
		return 0, err
	}
	if v, err = v.MulUint64(ledger.OwnerMultiplier); err != nil {
		return 0, err
	}
	if v, err = v.DivUint64(100); err != nil {
		return 0, err
	}
	return v.Uint64()
}
