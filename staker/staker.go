// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/jonboulle/clockwork"

	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/registry"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/bond"
	"github.com/vechain/stakeledger/staker/centralstate"
	"github.com/vechain/stakeledger/staker/pool"
	"github.com/vechain/stakeledger/staker/stakeaccount"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/token"
)

var logger = log.WithContext("pkg", "staker")

// Authorizer tells whether an identity signed the current operation.
type Authorizer interface {
	IsSigner(id ledger.Identity) bool
}

// Tokens is the token transfer service and reward mint supply oracle.
type Tokens interface {
	Account(id ledger.Identity) (*token.Account, error)
	Transfer(source, destination, authority ledger.Identity, amount uint64) error
	Supply(mint ledger.Identity) (uint64, error)
}

// Params are the deployment settings of the staker.
type Params struct {
	BondSellers         []ledger.Identity // parties allowed to create and sign bonds
	BondSignerThreshold uint64            // sellers required before a bond can be claimed
}

// DefaultParams has no bond seller and the default signer threshold.
func DefaultParams() Params {
	return Params{BondSignerThreshold: ledger.BondSignerThreshold}
}

// Staker runs the ledger operations against a state.
// An operation that returns an error leaves the state as it found it.
type Staker struct {
	state    *state.State
	registry registry.Registry
	tokens   Tokens
	clock    clockwork.Clock
	auth     Authorizer
	params   Params
}

// New create a new instance.
func New(st *state.State, reg registry.Registry, tokens Tokens, clock clockwork.Clock, auth Authorizer, params Params) *Staker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if auth == nil {
		auth = ledger.Signers(nil)
	}
	if params.BondSignerThreshold == 0 {
		params.BondSignerThreshold = ledger.BondSignerThreshold
	}
	return &Staker{
		state:    st,
		registry: reg,
		tokens:   tokens,
		clock:    clock,
		auth:     auth,
		params:   params,
	}
}

func (s *Staker) now() int64 {
	return s.clock.Now().Unix()
}

func (s *Staker) requireSigner(id ledger.Identity) error {
	if !s.auth.IsSigner(id) {
		return reverts.Errorf(reverts.CodeSignerRequired, "%v must sign", id)
	}
	return nil
}

//
// Getters - no state change
//

// CentralState returns the central state.
func (s *Staker) CentralState() (*centralstate.CentralState, error) {
	cs, _, err := s.loadCentralState()
	return cs, err
}

// StakePool returns the pool id.
func (s *Staker) StakePool(id ledger.Identity) (*pool.Pool, error) {
	return s.loadPool(id)
}

// StakeAccount returns the stake account id.
func (s *Staker) StakeAccount(id ledger.Identity) (*stakeaccount.StakeAccount, error) {
	return s.loadStakeAccount(id)
}

// Bond returns the bond id.
func (s *Staker) Bond(id ledger.Identity) (*bond.Bond, error) {
	return s.loadBond(id)
}

// CentralStateAddress returns the identity of the central state.
func (s *Staker) CentralStateAddress() (ledger.Identity, uint8, error) {
	return s.registry.FindAddress(s.registry.ProgramID().Bytes())
}

// PoolAddress returns the identity of the pool of owner paying its rewards to rewardsDestination.
func (s *Staker) PoolAddress(owner, rewardsDestination ledger.Identity) (ledger.Identity, uint8, error) {
	return s.registry.FindAddress([]byte(ledger.StakePoolSeed), owner.Bytes(), rewardsDestination.Bytes())
}

// StakeAccountAddress returns the identity of the stake account of owner in stakePool.
func (s *Staker) StakeAccountAddress(owner, stakePool ledger.Identity) (ledger.Identity, uint8, error) {
	return s.registry.FindAddress([]byte(ledger.StakeAccountSeed), owner.Bytes(), stakePool.Bytes())
}

// BondAddress returns the identity of the bond sold to owner.
func (s *Staker) BondAddress(owner ledger.Identity, totalAmountSold uint64) (ledger.Identity, error) {
	id, _, err := s.registry.FindAddress(bond.Seeds(owner, totalAmountSold)...)
	return id, err
}

// PendingRewards returns what ClaimRewards would pay at the current time.
func (s *Staker) PendingRewards(stakeAccountID ledger.Identity) (uint64, error) {
	sa, err := s.loadStakeAccount(stakeAccountID)
	if err != nil {
		return 0, err
	}
	p, err := s.loadPool(sa.StakePool)
	if err != nil {
		return 0, err
	}
	cs, _, err := s.loadCentralState()
	if err != nil {
		return 0, err
	}
	return s.stakerReward(p, cs, sa.StakeAmount, sa.LastClaimedTime, s.now())
}
