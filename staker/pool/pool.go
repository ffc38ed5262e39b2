// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"io"
	"math"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/tag"
)

// Balances is the circular history of daily pool balances.
type Balances [ledger.StakeBufferLen]checked.U128

// Pool aggregates the stake of its stake accounts and active bonds.
type Pool struct {
	status tag.Tag

	Nonce              uint8
	CurrentDayIdx      uint16 // number of cranks so far, never decreases
	MinimumStakeAmount uint64
	TotalStaked        uint64
	LastCrankTime      int64
	LastClaimedTime    int64 // last owner reward claim
	Owner              ledger.Identity
	RewardsDestination ledger.Identity
	Vault              ledger.Identity
	Balances           Balances
}

// body is the persisted form of a pool.
type body struct {
	Nonce              uint8
	CurrentDayIdx      uint16
	MinimumStakeAmount uint64
	TotalStaked        uint64
	LastCrankTime      uint64
	LastClaimedTime    uint64
	Owner              ledger.Identity
	RewardsDestination ledger.Identity
	Vault              ledger.Identity
	Balances           Balances
}

// New returns an active pool with an empty history.
func New(nonce uint8, owner, rewardsDestination ledger.Identity, minimumStakeAmount uint64, vault ledger.Identity, now int64) *Pool {
	return &Pool{
		status:             tag.StakePool,
		Nonce:              nonce,
		MinimumStakeAmount: minimumStakeAmount,
		LastCrankTime:      now,
		LastClaimedTime:    now,
		Owner:              owner,
		RewardsDestination: rewardsDestination,
		Vault:              vault,
	}
}

// Seeds returns the seeds of the pool identity.
func Seeds(owner, rewardsDestination ledger.Identity, nonce uint8) [][]byte {
	return [][]byte{[]byte(ledger.StakePoolSeed), owner.Bytes(), rewardsDestination.Bytes(), {nonce}}
}

// Status returns StakePool, or Deleted once closed.
func (p *Pool) Status() tag.Tag {
	return p.status
}

func (p *Pool) checkActive() error {
	if p.status != tag.StakePool {
		return reverts.Errorf(reverts.CodeDataTypeMismatch, "stake pool is %v", p.status)
	}
	return nil
}

func (p *Pool) Deposit(amount uint64) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	total, err := checked.Add(p.TotalStaked, amount)
	if err != nil {
		return err
	}
	p.TotalStaked = total
	return nil
}

func (p *Pool) Withdraw(amount uint64) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	total, err := checked.Sub(p.TotalStaked, amount)
	if err != nil {
		return err
	}
	p.TotalStaked = total
	return nil
}

// Crank records the current total stake into the next history slot.
// Once the buffer is full the oldest slot is overwritten.
func (p *Pool) Crank(now int64) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	if p.CurrentDayIdx == math.MaxUint16 {
		return reverts.ErrOverflow
	}
	p.Balances[uint64(p.CurrentDayIdx)%ledger.StakeBufferLen] = checked.FromUint64(p.TotalStaked)
	p.CurrentDayIdx++
	p.LastCrankTime = now
	return nil
}

// Balance returns the balance recorded at day, modulo the buffer length.
func (p *Pool) Balance(day uint64) checked.U128 {
	return p.Balances[day%ledger.StakeBufferLen]
}

// SetMinimum changes the minimum stake. Existing accounts keep their own minimum.
func (p *Pool) SetMinimum(minimum uint64) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	p.MinimumStakeAmount = minimum
	return nil
}

// Close marks the pool deleted. The pool must not hold any stake.
func (p *Pool) Close() error {
	if err := p.checkActive(); err != nil {
		return err
	}
	if p.TotalStaked != 0 {
		return reverts.ErrPoolNotEmpty
	}
	p.status = tag.Deleted
	return nil
}

func (p *Pool) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &body{
		Nonce:              p.Nonce,
		CurrentDayIdx:      p.CurrentDayIdx,
		MinimumStakeAmount: p.MinimumStakeAmount,
		TotalStaked:        p.TotalStaked,
		LastCrankTime:      uint64(p.LastCrankTime),
		LastClaimedTime:    uint64(p.LastClaimedTime),
		Owner:              p.Owner,
		RewardsDestination: p.RewardsDestination,
		Vault:              p.Vault,
		Balances:           p.Balances,
	})
}

func (p *Pool) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	*p = Pool{
		status:             p.status,
		Nonce:              b.Nonce,
		CurrentDayIdx:      b.CurrentDayIdx,
		MinimumStakeAmount: b.MinimumStakeAmount,
		TotalStaked:        b.TotalStaked,
		LastCrankTime:      int64(b.LastCrankTime),
		LastClaimedTime:    int64(b.LastClaimedTime),
		Owner:              b.Owner,
		RewardsDestination: b.RewardsDestination,
		Vault:              b.Vault,
		Balances:           b.Balances,
	}
	return nil
}

// Encode returns the persisted bytes of the pool.
func (p *Pool) Encode() ([]byte, error) {
	return tag.Encode(p.status, p)
}

// Decode loads an active pool. A deleted or foreign account is a DataTypeMismatch.
func Decode(data []byte) (*Pool, error) {
	var p Pool
	t, err := tag.Decode(data, &p, tag.StakePool)
	if err != nil {
		return nil, err
	}
	p.status = t
	return &p, nil
}
