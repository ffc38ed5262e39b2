// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeaccount

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/tag"
)

// StakeAccount is the position of one owner in one pool.
type StakeAccount struct {
	status tag.Tag

	Nonce                 uint8
	Owner                 ledger.Identity
	StakeAmount           uint64
	StakePool             ledger.Identity
	LastClaimedTime       int64
	PoolMinimumAtCreation uint64
}

type body struct {
	Nonce                 uint8
	Owner                 ledger.Identity
	StakeAmount           uint64
	StakePool             ledger.Identity
	LastClaimedTime       uint64
	PoolMinimumAtCreation uint64
}

func New(nonce uint8, owner, stakePool ledger.Identity, poolMinimum uint64, now int64) *StakeAccount {
	return &StakeAccount{
		status:                tag.StakeAccount,
		Nonce:                 nonce,
		Owner:                 owner,
		StakePool:             stakePool,
		LastClaimedTime:       now,
		PoolMinimumAtCreation: poolMinimum,
	}
}

// Seeds returns the seeds of the stake account identity.
func Seeds(owner, stakePool ledger.Identity, nonce uint8) [][]byte {
	return [][]byte{[]byte(ledger.StakeAccountSeed), owner.Bytes(), stakePool.Bytes(), {nonce}}
}

func (a *StakeAccount) Status() tag.Tag {
	return a.status
}

func (a *StakeAccount) checkActive() error {
	if a.status != tag.StakeAccount {
		return reverts.Errorf(reverts.CodeDataTypeMismatch, "stake account is %v", a.status)
	}
	return nil
}

// Deposit adds amount to the stake. The resulting stake must reach the
// minimum the pool had when this account was created.
func (a *StakeAccount) Deposit(amount uint64) error {
	if err := a.checkActive(); err != nil {
		return err
	}
	if amount == 0 {
		return reverts.Errorf(reverts.CodeInvalidAmount, "zero stake amount")
	}
	stake, err := checked.Add(a.StakeAmount, amount)
	if err != nil {
		return err
	}
	if stake < a.PoolMinimumAtCreation {
		return reverts.Errorf(reverts.CodeInvalidAmount, "stake %d below pool minimum %d", stake, a.PoolMinimumAtCreation)
	}
	a.StakeAmount = stake
	return nil
}

// Withdraw removes amount from the stake. The minimum is not enforced here.
func (a *StakeAccount) Withdraw(amount uint64) error {
	if err := a.checkActive(); err != nil {
		return err
	}
	stake, err := checked.Sub(a.StakeAmount, amount)
	if err != nil {
		return err
	}
	a.StakeAmount = stake
	return nil
}

// Close marks the account deleted. The stake must be fully withdrawn.
func (a *StakeAccount) Close() error {
	if err := a.checkActive(); err != nil {
		return err
	}
	if a.StakeAmount != 0 {
		return reverts.ErrAccountNotEmpty
	}
	a.status = tag.Deleted
	return nil
}

func (a *StakeAccount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &body{
		Nonce:                 a.Nonce,
		Owner:                 a.Owner,
		StakeAmount:           a.StakeAmount,
		StakePool:             a.StakePool,
		LastClaimedTime:       uint64(a.LastClaimedTime),
		PoolMinimumAtCreation: a.PoolMinimumAtCreation,
	})
}

func (a *StakeAccount) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	a.Nonce = b.Nonce
	a.Owner = b.Owner
	a.StakeAmount = b.StakeAmount
	a.StakePool = b.StakePool
	a.LastClaimedTime = int64(b.LastClaimedTime)
	a.PoolMinimumAtCreation = b.PoolMinimumAtCreation
	return nil
}

func (a *StakeAccount) Encode() ([]byte, error) {
	return tag.Encode(a.status, a)
}

// Decode loads a live stake account.
func Decode(data []byte) (*StakeAccount, error) {
	var a StakeAccount
	t, err := tag.Decode(data, &a, tag.StakeAccount)
	if err != nil {
		return nil, err
	}
	a.status = t
	return &a, nil
}
