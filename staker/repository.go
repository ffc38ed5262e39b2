// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/bond"
	"github.com/vechain/stakeledger/staker/centralstate"
	"github.com/vechain/stakeledger/staker/pool"
	"github.com/vechain/stakeledger/staker/stakeaccount"
	"github.com/vechain/stakeledger/staker/tag"
)

// AccountBucket is the key space of staker accounts.
var AccountBucket = kv.Bucket("a")

type encoder interface {
	Encode() ([]byte, error)
}

func (s *Staker) raw(id ledger.Identity) ([]byte, error) {
	data, err := s.state.Get(AccountBucket.Key(id.Bytes()))
	if err != nil {
		return nil, errors.Wrapf(err, "load account %v", id)
	}
	return data, nil
}

// commit runs the writes of an operation in order. When one fails, the
// writes before it are undone.
func (s *Staker) commit(writes ...func() error) error {
	checkpoint := s.state.NewCheckpoint()
	for _, write := range writes {
		if err := write(); err != nil {
			s.state.RevertTo(checkpoint)
			return err
		}
	}
	return nil
}

func (s *Staker) save(id ledger.Identity, entity encoder) error {
	return s.state.EncodeStorage(AccountBucket.Key(id.Bytes()), entity.Encode)
}

// checkUninitialized rejects creating an account over an existing or deleted one.
func (s *Staker) checkUninitialized(id ledger.Identity) error {
	data, err := s.raw(id)
	if err != nil {
		return err
	}
	if t := tag.Of(data); t != tag.Uninitialized {
		return reverts.Errorf(reverts.CodeAlreadyInitialized, "account %v is %v", id, t)
	}
	return nil
}

// checkDerived recomputes the identity from seeds and compares it with id.
func (s *Staker) checkDerived(id ledger.Identity, seeds [][]byte) error {
	derived, err := s.registry.CreateAddress(seeds...)
	if err != nil || derived != id {
		return reverts.Errorf(reverts.CodeAccountNotDeterministic, "account %v is not deterministic", id)
	}
	return nil
}

func (s *Staker) loadCentralState() (*centralstate.CentralState, ledger.Identity, error) {
	id, _, err := s.CentralStateAddress()
	if err != nil {
		return nil, ledger.Identity{}, err
	}
	data, err := s.raw(id)
	if err != nil {
		return nil, ledger.Identity{}, err
	}
	cs, err := centralstate.Decode(data)
	if err != nil {
		return nil, ledger.Identity{}, err
	}
	if err := s.checkDerived(id, centralstate.Seeds(s.registry.ProgramID(), cs.SignerNonce)); err != nil {
		return nil, ledger.Identity{}, err
	}
	return cs, id, nil
}

func (s *Staker) loadPool(id ledger.Identity) (*pool.Pool, error) {
	data, err := s.raw(id)
	if err != nil {
		return nil, err
	}
	p, err := pool.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := s.checkDerived(id, pool.Seeds(p.Owner, p.RewardsDestination, p.Nonce)); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Staker) loadStakeAccount(id ledger.Identity) (*stakeaccount.StakeAccount, error) {
	data, err := s.raw(id)
	if err != nil {
		return nil, err
	}
	sa, err := stakeaccount.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := s.checkDerived(id, stakeaccount.Seeds(sa.Owner, sa.StakePool, sa.Nonce)); err != nil {
		return nil, err
	}
	return sa, nil
}

func (s *Staker) loadBond(id ledger.Identity) (*bond.Bond, error) {
	data, err := s.raw(id)
	if err != nil {
		return nil, err
	}
	b, err := bond.Decode(data)
	if err != nil {
		return nil, err
	}
	derived, err := s.BondAddress(b.Owner, b.TotalAmountSold)
	if err != nil || derived != id {
		return nil, reverts.Errorf(reverts.CodeAccountNotDeterministic, "bond %v is not deterministic", id)
	}
	return b, nil
}

// checkTokenAccount checks id holds mint and, unless owner is zero, belongs to owner.
func (s *Staker) checkTokenAccount(id, owner, mint ledger.Identity) error {
	acc, err := s.tokens.Account(id)
	if err != nil {
		return err
	}
	if !owner.IsZero() && acc.Owner != owner {
		return reverts.Errorf(reverts.CodeWrongOwner, "token account %v is not owned by %v", id, owner)
	}
	if acc.Mint != mint {
		return reverts.Errorf(reverts.CodeWrongMint, "token account %v does not hold %v", id, mint)
	}
	return nil
}

// checkVault checks the pool vault still belongs to the pool and holds the reward token.
func (s *Staker) checkVault(p *pool.Pool, poolID ledger.Identity, cs *centralstate.CentralState) error {
	acc, err := s.tokens.Account(p.Vault)
	if err != nil {
		return err
	}
	if acc.Owner != poolID || acc.Mint != cs.TokenMint {
		return reverts.Errorf(reverts.CodeWrongVault, "vault %v does not belong to pool %v", p.Vault, poolID)
	}
	return nil
}

// stakeContext is what a stake or bond operation reads besides the position itself.
type stakeContext struct {
	pool      *pool.Pool
	poolID    ledger.Identity
	central   *centralstate.CentralState
	centralID ledger.Identity
}

func (s *Staker) loadStakeContext(poolID ledger.Identity) (*stakeContext, error) {
	p, err := s.loadPool(poolID)
	if err != nil {
		return nil, err
	}
	cs, csID, err := s.loadCentralState()
	if err != nil {
		return nil, err
	}
	return &stakeContext{
		pool:      p,
		poolID:    poolID,
		central:   cs,
		centralID: csID,
	}, nil
}
