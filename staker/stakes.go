// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/rewards"
	"github.com/vechain/stakeledger/staker/stakeaccount"
)

// CreateStakeAccount opens the stake account of owner in poolID. It keeps the
// pool's current minimum for its whole life.
func (s *Staker) CreateStakeAccount(owner, poolID ledger.Identity) (ledger.Identity, error) {
	p, err := s.loadPool(poolID)
	if err != nil {
		return ledger.Identity{}, err
	}
	id, nonce, err := s.StakeAccountAddress(owner, poolID)
	if err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkUninitialized(id); err != nil {
		return ledger.Identity{}, err
	}

	sa := stakeaccount.New(nonce, owner, poolID, p.MinimumStakeAmount, s.now())
	if err := s.save(id, sa); err != nil {
		return ledger.Identity{}, err
	}
	logger.Debug("stake account created", "id", id, "owner", owner, "pool", poolID)
	return id, nil
}

// loadStake loads a stake account signed by its owner, and its pool.
func (s *Staker) loadStake(stakeAccountID ledger.Identity) (*stakeaccount.StakeAccount, *stakeContext, error) {
	sa, err := s.loadStakeAccount(stakeAccountID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireSigner(sa.Owner); err != nil {
		return nil, nil, err
	}
	ctx, err := s.loadStakeContext(sa.StakePool)
	if err != nil {
		return nil, nil, err
	}
	return sa, ctx, nil
}

// Stake moves amount from the owner's source token account into the pool vault.
// Pending rewards must be claimed before adding to a non-empty stake.
func (s *Staker) Stake(stakeAccountID, source ledger.Identity, amount uint64) error {
	sa, ctx, err := s.loadStake(stakeAccountID)
	if err != nil {
		return err
	}
	if err := s.checkTokenAccount(source, sa.Owner, ctx.central.TokenMint); err != nil {
		return err
	}
	if err := s.checkVault(ctx.pool, ctx.poolID, ctx.central); err != nil {
		return err
	}

	now := s.now()
	if sa.StakeAmount == 0 {
		sa.LastClaimedTime = now
	} else if rewards.ElapsedDays(now, sa.LastClaimedTime) > 0 {
		return reverts.ErrUnclaimedRewards
	}
	if err := sa.Deposit(amount); err != nil {
		return err
	}
	if err := ctx.pool.Deposit(amount); err != nil {
		return err
	}

	return s.commit(
		func() error { return s.tokens.Transfer(source, ctx.pool.Vault, sa.Owner, amount) },
		func() error { return s.save(stakeAccountID, sa) },
		func() error { return s.save(ctx.poolID, ctx.pool) },
	)
}

// Unstake moves amount from the pool vault back to the owner's destination token account.
func (s *Staker) Unstake(stakeAccountID, destination ledger.Identity, amount uint64) error {
	sa, ctx, err := s.loadStake(stakeAccountID)
	if err != nil {
		return err
	}
	if amount == 0 {
		return reverts.Errorf(reverts.CodeInvalidAmount, "zero unstake amount")
	}
	if err := s.checkTokenAccount(destination, sa.Owner, ctx.central.TokenMint); err != nil {
		return err
	}
	if err := s.checkVault(ctx.pool, ctx.poolID, ctx.central); err != nil {
		return err
	}
	if err := sa.Withdraw(amount); err != nil {
		return err
	}
	if err := ctx.pool.Withdraw(amount); err != nil {
		return err
	}

	return s.commit(
		func() error { return s.tokens.Transfer(ctx.pool.Vault, destination, ctx.poolID, amount) },
		func() error { return s.save(stakeAccountID, sa) },
		func() error { return s.save(ctx.poolID, ctx.pool) },
	)
}

// ClaimRewards pays the staker reward accrued since the last claim to destination.
func (s *Staker) ClaimRewards(stakeAccountID, destination ledger.Identity) (uint64, error) {
	sa, ctx, err := s.loadStake(stakeAccountID)
	if err != nil {
		return 0, err
	}
	if err := s.checkTokenAccount(destination, ledger.Identity{}, ctx.central.TokenMint); err != nil {
		return 0, err
	}
	now := s.now()
	reward, err := s.stakerReward(ctx.pool, ctx.central, sa.StakeAmount, sa.LastClaimedTime, now)
	if err != nil {
		return 0, err
	}
	sa.LastClaimedTime = now

	if err := s.commit(
		func() error { return s.payReward(ctx.central, ctx.centralID, destination, reward) },
		func() error { return s.save(stakeAccountID, sa) },
	); err != nil {
		return 0, err
	}
	return reward, nil
}

// CloseStakeAccount deletes an empty stake account.
func (s *Staker) CloseStakeAccount(stakeAccountID ledger.Identity) error {
	sa, err := s.loadStakeAccount(stakeAccountID)
	if err != nil {
		return err
	}
	if err := s.requireSigner(sa.Owner); err != nil {
		return err
	}
	if err := sa.Close(); err != nil {
		return err
	}
	logger.Debug("stake account closed", "id", stakeAccountID)
	return s.save(stakeAccountID, sa)
}
