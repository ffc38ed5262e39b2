// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/pool"
	"github.com/vechain/stakeledger/staker/rewards"
)

// CreateStakePool opens the pool of owner. vault must be a reward token account owned by the pool.
func (s *Staker) CreateStakePool(owner, rewardsDestination ledger.Identity, minimumStakeAmount uint64, vault ledger.Identity) (ledger.Identity, error) {
	if err := s.requireSigner(owner); err != nil {
		return ledger.Identity{}, err
	}
	cs, _, err := s.loadCentralState()
	if err != nil {
		return ledger.Identity{}, err
	}
	id, nonce, err := s.PoolAddress(owner, rewardsDestination)
	if err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkUninitialized(id); err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkTokenAccount(vault, id, cs.TokenMint); err != nil {
		return ledger.Identity{}, err
	}
	dest, err := s.tokens.Account(rewardsDestination)
	if err != nil {
		return ledger.Identity{}, err
	}
	if dest.Mint != cs.TokenMint {
		return ledger.Identity{}, reverts.Errorf(reverts.CodeWrongDestination, "rewards destination %v does not hold %v", rewardsDestination, cs.TokenMint)
	}

	p := pool.New(nonce, owner, rewardsDestination, minimumStakeAmount, vault, s.now())
	if err := s.save(id, p); err != nil {
		return ledger.Identity{}, err
	}
	logger.Debug("stake pool created", "id", id, "owner", owner, "minimum", minimumStakeAmount)
	return id, nil
}

// CrankStakePool records the pool's current stake into its history. Anyone may crank.
func (s *Staker) CrankStakePool(poolID ledger.Identity) error {
	p, err := s.loadPool(poolID)
	if err != nil {
		return err
	}
	if err := p.Crank(s.now()); err != nil {
		return err
	}
	return s.save(poolID, p)
}

// loadOwnedPool loads poolID and checks owner signed and owns it.
func (s *Staker) loadOwnedPool(poolID, owner ledger.Identity) (*pool.Pool, error) {
	if err := s.requireSigner(owner); err != nil {
		return nil, err
	}
	p, err := s.loadPool(poolID)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, reverts.Errorf(reverts.CodeUnauthorized, "%v does not own pool %v", owner, poolID)
	}
	return p, nil
}

// ChangePoolMinimum sets the minimum stake of accounts created from now on.
func (s *Staker) ChangePoolMinimum(poolID, owner ledger.Identity, minimum uint64) error {
	p, err := s.loadOwnedPool(poolID, owner)
	if err != nil {
		return err
	}
	if err := p.SetMinimum(minimum); err != nil {
		return err
	}
	return s.save(poolID, p)
}

// CloseStakePool deletes an empty pool.
func (s *Staker) CloseStakePool(poolID, owner ledger.Identity) error {
	p, err := s.loadOwnedPool(poolID, owner)
	if err != nil {
		return err
	}
	if err := p.Close(); err != nil {
		return err
	}
	logger.Debug("stake pool closed", "id", poolID)
	return s.save(poolID, p)
}

// ClaimPoolRewards pays the owner share since the last pool claim to the rewards destination.
func (s *Staker) ClaimPoolRewards(poolID, owner ledger.Identity) (uint64, error) {
	p, err := s.loadOwnedPool(poolID, owner)
	if err != nil {
		return 0, err
	}
	cs, csID, err := s.loadCentralState()
	if err != nil {
		return 0, err
	}
	supply, err := s.rewardSupply(cs)
	if err != nil {
		return 0, err
	}
	now := s.now()
	reward, err := rewards.OwnerReward(p, cs.DailyInflation, supply, now)
	if err != nil {
		return 0, err
	}
	p.LastClaimedTime = now

	if err := s.commit(
		func() error { return s.payReward(cs, csID, p.RewardsDestination, reward) },
		func() error { return s.save(poolID, p) },
	); err != nil {
		return 0, err
	}
	return reward, nil
}
