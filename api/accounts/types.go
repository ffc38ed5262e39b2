// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staker/bond"
	"github.com/vechain/stakeledger/staker/centralstate"
	"github.com/vechain/stakeledger/staker/pool"
	"github.com/vechain/stakeledger/staker/stakeaccount"
	"github.com/vechain/stakeledger/token"
)

// recentDays is the number of crank slots listed with a pool.
const recentDays = 7

type CentralState struct {
	ID             ledger.Identity `json:"id"`
	DailyInflation uint64          `json:"dailyInflation"`
	TokenMint      ledger.Identity `json:"tokenMint"`
	Authority      ledger.Identity `json:"authority"`
	CentralVault   ledger.Identity `json:"centralVault"`
}

func convertCentralState(id ledger.Identity, cs *centralstate.CentralState) *CentralState {
	return &CentralState{
		ID:             id,
		DailyInflation: cs.DailyInflation,
		TokenMint:      cs.TokenMint,
		Authority:      cs.Authority,
		CentralVault:   cs.CentralVault,
	}
}

type Pool struct {
	Status             string          `json:"status"`
	CurrentDayIdx      uint16          `json:"currentDayIdx"`
	MinimumStakeAmount uint64          `json:"minimumStakeAmount"`
	TotalStaked        uint64          `json:"totalStaked"`
	LastCrankTime      int64           `json:"lastCrankTime"`
	LastClaimedTime    int64           `json:"lastClaimedTime"`
	Owner              ledger.Identity `json:"owner"`
	RewardsDestination ledger.Identity `json:"rewardsDestination"`
	Vault              ledger.Identity `json:"vault"`
	// RecentBalances are the last recorded daily balances, oldest first.
	RecentBalances []string `json:"recentBalances"`
}

func convertPool(p *pool.Pool) *Pool {
	n := min(uint64(p.CurrentDayIdx), recentDays)
	recent := make([]string, 0, n)
	for day := uint64(p.CurrentDayIdx) - n; day < uint64(p.CurrentDayIdx); day++ {
		recent = append(recent, p.Balance(day).String())
	}
	return &Pool{
		Status:             p.Status().String(),
		CurrentDayIdx:      p.CurrentDayIdx,
		MinimumStakeAmount: p.MinimumStakeAmount,
		TotalStaked:        p.TotalStaked,
		LastCrankTime:      p.LastCrankTime,
		LastClaimedTime:    p.LastClaimedTime,
		Owner:              p.Owner,
		RewardsDestination: p.RewardsDestination,
		Vault:              p.Vault,
		RecentBalances:     recent,
	}
}

type StakeAccount struct {
	Owner                 ledger.Identity `json:"owner"`
	StakePool             ledger.Identity `json:"stakePool"`
	StakeAmount           uint64          `json:"stakeAmount"`
	LastClaimedTime       int64           `json:"lastClaimedTime"`
	PoolMinimumAtCreation uint64          `json:"poolMinimumAtCreation"`
	PendingRewards        uint64          `json:"pendingRewards"`
}

func convertStakeAccount(sa *stakeaccount.StakeAccount, pending uint64) *StakeAccount {
	return &StakeAccount{
		Owner:                 sa.Owner,
		StakePool:             sa.StakePool,
		StakeAmount:           sa.StakeAmount,
		LastClaimedTime:       sa.LastClaimedTime,
		PoolMinimumAtCreation: sa.PoolMinimumAtCreation,
		PendingRewards:        pending,
	}
}

type Bond struct {
	Status              string            `json:"status"`
	Owner               ledger.Identity   `json:"owner"`
	StakePool           ledger.Identity   `json:"stakePool"`
	TotalAmountSold     uint64            `json:"totalAmountSold"`
	TotalStaked         uint64            `json:"totalStaked"`
	TotalQuoteAmount    uint64            `json:"totalQuoteAmount"`
	QuoteMint           ledger.Identity   `json:"quoteMint"`
	UnlockStartDate     int64             `json:"unlockStartDate"`
	UnlockPeriod        int64             `json:"unlockPeriod"`
	UnlockAmount        uint64            `json:"unlockAmount"`
	LastUnlockTime      int64             `json:"lastUnlockTime"`
	TotalUnlockedAmount uint64            `json:"totalUnlockedAmount"`
	LastClaimedTime     int64             `json:"lastClaimedTime"`
	Sellers             []ledger.Identity `json:"sellers"`
}

func convertBond(b *bond.Bond) *Bond {
	return &Bond{
		Status:              b.Status().String(),
		Owner:               b.Owner,
		StakePool:           b.StakePool,
		TotalAmountSold:     b.TotalAmountSold,
		TotalStaked:         b.TotalStaked,
		TotalQuoteAmount:    b.TotalQuoteAmount,
		QuoteMint:           b.QuoteMint,
		UnlockStartDate:     b.UnlockStartDate,
		UnlockPeriod:        b.UnlockPeriod,
		UnlockAmount:        b.UnlockAmount,
		LastUnlockTime:      b.LastUnlockTime,
		TotalUnlockedAmount: b.TotalUnlockedAmount,
		LastClaimedTime:     b.LastClaimedTime,
		Sellers:             b.Sellers,
	}
}

type TokenAccount struct {
	Mint   ledger.Identity `json:"mint"`
	Owner  ledger.Identity `json:"owner"`
	Amount uint64          `json:"amount"`
}

func convertTokenAccount(acc *token.Account) *TokenAccount {
	return &TokenAccount{
		Mint:   acc.Mint,
		Owner:  acc.Owner,
		Amount: acc.Amount,
	}
}
