// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"slices"

	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/bond"
)

func (s *Staker) requireSeller(seller ledger.Identity) error {
	if err := s.requireSigner(seller); err != nil {
		return err
	}
	if !slices.Contains(s.params.BondSellers, seller) {
		return reverts.Errorf(reverts.CodeUnauthorized, "%v is not an authorized bond seller", seller)
	}
	return nil
}

// CreateBond records a sale by seller. The bond stays inactive until the buyer pays.
func (s *Staker) CreateBond(seller ledger.Identity, terms bond.Terms) (ledger.Identity, error) {
	if err := s.requireSeller(seller); err != nil {
		return ledger.Identity{}, err
	}
	p, err := s.loadPool(terms.StakePool)
	if err != nil {
		return ledger.Identity{}, err
	}
	if terms.TotalAmountSold < p.MinimumStakeAmount {
		return ledger.Identity{}, reverts.Errorf(reverts.CodeInvalidAmount, "amount sold %d below pool minimum %d", terms.TotalAmountSold, p.MinimumStakeAmount)
	}
	id, err := s.BondAddress(terms.Owner, terms.TotalAmountSold)
	if err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkUninitialized(id); err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkTokenAccount(terms.SellerTokenAccount, ledger.Identity{}, terms.QuoteMint); err != nil {
		return ledger.Identity{}, err
	}

	b, err := bond.New(terms, seller, p.MinimumStakeAmount, s.now())
	if err != nil {
		return ledger.Identity{}, err
	}
	if err := s.save(id, b); err != nil {
		return ledger.Identity{}, err
	}
	logger.Debug("bond created", "id", id, "owner", terms.Owner, "sold", terms.TotalAmountSold)
	return id, nil
}

// SignBond adds the signature of another authorized seller.
func (s *Staker) SignBond(bondID, seller ledger.Identity) error {
	if err := s.requireSeller(seller); err != nil {
		return err
	}
	b, err := s.loadBond(bondID)
	if err != nil {
		return err
	}
	if err := b.AddSeller(seller, s.params.BondSignerThreshold); err != nil {
		return err
	}
	return s.save(bondID, b)
}

// ClaimBond takes the buyer's payment from source and activates the bond.
// The sold amount starts counting as stake of the pool.
func (s *Staker) ClaimBond(bondID, source ledger.Identity) error {
	b, err := s.loadBond(bondID)
	if err != nil {
		return err
	}
	if err := s.requireSigner(b.Owner); err != nil {
		return err
	}
	p, err := s.loadPool(b.StakePool)
	if err != nil {
		return err
	}
	if err := s.checkTokenAccount(source, b.Owner, b.QuoteMint); err != nil {
		return err
	}
	if err := b.Activate(s.params.BondSignerThreshold, s.now()); err != nil {
		return err
	}
	if err := p.Deposit(b.TotalStaked); err != nil {
		return err
	}

	if err := s.commit(
		func() error { return s.tokens.Transfer(source, b.SellerTokenAccount, b.Owner, b.TotalQuoteAmount) },
		func() error { return s.save(bondID, b) },
		func() error { return s.save(b.StakePool, p) },
	); err != nil {
		return err
	}
	logger.Debug("bond claimed", "id", bondID, "pool", b.StakePool, "staked", b.TotalStaked)
	return nil
}

// loadActiveBond loads a bond signed by its owner together with its pool.
func (s *Staker) loadActiveBond(bondID ledger.Identity) (*bond.Bond, *stakeContext, error) {
	b, err := s.loadBond(bondID)
	if err != nil {
		return nil, nil, err
	}
	if err := b.CheckClaimable(); err != nil {
		return nil, nil, err
	}
	if err := s.requireSigner(b.Owner); err != nil {
		return nil, nil, err
	}
	ctx, err := s.loadStakeContext(b.StakePool)
	if err != nil {
		return nil, nil, err
	}
	return b, ctx, nil
}

// UnlockBondTokens releases the vested periods to the owner's destination token account.
func (s *Staker) UnlockBondTokens(bondID, destination ledger.Identity) (uint64, error) {
	b, ctx, err := s.loadActiveBond(bondID)
	if err != nil {
		return 0, err
	}
	if err := s.checkTokenAccount(destination, b.Owner, ctx.central.TokenMint); err != nil {
		return 0, err
	}
	amount, err := b.Unlock(s.now())
	if err != nil {
		return 0, err
	}
	if err := ctx.pool.Withdraw(amount); err != nil {
		return 0, err
	}

	if err := s.commit(
		func() error { return s.payReward(ctx.central, ctx.centralID, destination, amount) },
		func() error { return s.save(bondID, b) },
		func() error { return s.save(ctx.poolID, ctx.pool) },
	); err != nil {
		return 0, err
	}
	return amount, nil
}

// ClaimBondRewards pays the reward on the still delegated part of the bond.
func (s *Staker) ClaimBondRewards(bondID, destination ledger.Identity) (uint64, error) {
	b, ctx, err := s.loadActiveBond(bondID)
	if err != nil {
		return 0, err
	}
	if err := s.checkTokenAccount(destination, ledger.Identity{}, ctx.central.TokenMint); err != nil {
		return 0, err
	}
	now := s.now()
	reward, err := s.stakerReward(ctx.pool, ctx.central, b.TotalStaked, b.LastClaimedTime, now)
	if err != nil {
		return 0, err
	}
	b.LastClaimedTime = now

	if err := s.commit(
		func() error { return s.payReward(ctx.central, ctx.centralID, destination, reward) },
		func() error { return s.save(bondID, b) },
	); err != nil {
		return 0, err
	}
	return reward, nil
}

// CloseBond deletes a fully unlocked bond.
func (s *Staker) CloseBond(bondID ledger.Identity) error {
	b, err := s.loadBond(bondID)
	if err != nil {
		return err
	}
	if err := s.requireSigner(b.Owner); err != nil {
		return err
	}
	if err := b.Close(); err != nil {
		return err
	}
	logger.Debug("bond closed", "id", bondID)
	return s.save(bondID, b)
}
