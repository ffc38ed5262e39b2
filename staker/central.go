// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staker/centralstate"
	"github.com/vechain/stakeledger/staker/pool"
	"github.com/vechain/stakeledger/staker/rewards"
)

// CreateCentralState initializes the singleton. vault must be a token account of mint
// owned by the central state.
func (s *Staker) CreateCentralState(dailyInflation uint64, mint, authority, vault ledger.Identity) (ledger.Identity, error) {
	id, nonce, err := s.CentralStateAddress()
	if err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkUninitialized(id); err != nil {
		return ledger.Identity{}, err
	}
	if err := s.checkTokenAccount(vault, id, mint); err != nil {
		return ledger.Identity{}, err
	}

	cs := centralstate.New(nonce, dailyInflation, mint, authority, vault)
	if err := s.save(id, cs); err != nil {
		return ledger.Identity{}, err
	}
	logger.Debug("central state created", "id", id, "inflation", dailyInflation, "mint", mint)
	return id, nil
}

// ChangeInflation sets the daily inflation. authority must sign and match the central state.
func (s *Staker) ChangeInflation(authority ledger.Identity, dailyInflation uint64) error {
	if err := s.requireSigner(authority); err != nil {
		return err
	}
	cs, id, err := s.loadCentralState()
	if err != nil {
		return err
	}
	if err := cs.SetInflation(authority, dailyInflation); err != nil {
		return err
	}
	return s.save(id, cs)
}

func (s *Staker) rewardSupply(cs *centralstate.CentralState) (uint64, error) {
	return s.tokens.Supply(cs.TokenMint)
}

func (s *Staker) stakerReward(p *pool.Pool, cs *centralstate.CentralState, stake uint64, lastClaimed, now int64) (uint64, error) {
	supply, err := s.rewardSupply(cs)
	if err != nil {
		return 0, err
	}
	return rewards.StakerReward(p, cs.DailyInflation, supply, stake, lastClaimed, now)
}

// payReward moves amount from the central vault, signed by the central state.
func (s *Staker) payReward(cs *centralstate.CentralState, csID, destination ledger.Identity, amount uint64) error {
	return s.tokens.Transfer(cs.CentralVault, destination, csID, amount)
}
