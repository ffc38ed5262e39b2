// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bond

import (
	"encoding/binary"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/tag"
)

// Bond is a vesting sale whose unlocked part is still staked in a pool.
type Bond struct {
	status tag.Tag

	Owner                 ledger.Identity
	TotalAmountSold       uint64
	TotalStaked           uint64
	TotalQuoteAmount      uint64
	QuoteMint             ledger.Identity
	SellerTokenAccount    ledger.Identity
	UnlockStartDate       int64
	UnlockPeriod          int64
	UnlockAmount          uint64
	LastUnlockTime        int64
	TotalUnlockedAmount   uint64
	PoolMinimumAtCreation uint64
	StakePool             ledger.Identity
	LastClaimedTime       int64
	Sellers               []ledger.Identity
}

type body struct {
	Owner                 ledger.Identity
	TotalAmountSold       uint64
	TotalStaked           uint64
	TotalQuoteAmount      uint64
	QuoteMint             ledger.Identity
	SellerTokenAccount    ledger.Identity
	UnlockStartDate       uint64
	UnlockPeriod          uint64
	UnlockAmount          uint64
	LastUnlockTime        uint64
	TotalUnlockedAmount   uint64
	PoolMinimumAtCreation uint64
	StakePool             ledger.Identity
	LastClaimedTime       uint64
	Sellers               []ledger.Identity
}

// Terms are the sale conditions fixed at creation.
type Terms struct {
	Owner              ledger.Identity
	TotalAmountSold    uint64
	TotalQuoteAmount   uint64
	QuoteMint          ledger.Identity
	SellerTokenAccount ledger.Identity
	UnlockStartDate    int64
	UnlockPeriod       int64
	UnlockAmount       uint64
	StakePool          ledger.Identity
}

// Validate checks the vesting schedule can release the whole sale.
func (t *Terms) Validate() error {
	switch {
	case t.TotalAmountSold == 0:
		return reverts.Errorf(reverts.CodeInvalidArgument, "zero amount sold")
	case t.UnlockPeriod <= 0:
		return reverts.Errorf(reverts.CodeInvalidArgument, "unlock period must be positive")
	case t.UnlockAmount == 0:
		return reverts.Errorf(reverts.CodeInvalidArgument, "zero unlock amount")
	case t.UnlockAmount > t.TotalAmountSold:
		return reverts.Errorf(reverts.CodeInvalidArgument, "unlock amount %d above amount sold %d", t.UnlockAmount, t.TotalAmountSold)
	}
	return nil
}

// New returns an inactive bond signed by seller.
func New(terms Terms, seller ledger.Identity, poolMinimum uint64, now int64) (*Bond, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return &Bond{
		status:                tag.InactiveBondAccount,
		Owner:                 terms.Owner,
		TotalAmountSold:       terms.TotalAmountSold,
		TotalStaked:           terms.TotalAmountSold,
		TotalQuoteAmount:      terms.TotalQuoteAmount,
		QuoteMint:             terms.QuoteMint,
		SellerTokenAccount:    terms.SellerTokenAccount,
		UnlockStartDate:       terms.UnlockStartDate,
		UnlockPeriod:          terms.UnlockPeriod,
		UnlockAmount:          terms.UnlockAmount,
		LastUnlockTime:        terms.UnlockStartDate,
		PoolMinimumAtCreation: poolMinimum,
		StakePool:             terms.StakePool,
		LastClaimedTime:       now,
		Sellers:               []ledger.Identity{seller},
	}, nil
}

// Seeds returns the seeds of the bond identity, searched without a bump.
func Seeds(owner ledger.Identity, totalAmountSold uint64) [][]byte {
	return [][]byte{[]byte(ledger.BondAccountSeed), owner.Bytes(), binary.BigEndian.AppendUint64(nil, totalAmountSold)}
}

func (b *Bond) Status() tag.Tag {
	return b.status
}

func (b *Bond) IsActive() bool {
	return b.status == tag.BondAccount
}

func (b *Bond) checkInactive() error {
	if b.status != tag.InactiveBondAccount {
		return reverts.Errorf(reverts.CodeDataTypeMismatch, "bond is %v", b.status)
	}
	return nil
}

func (b *Bond) checkActive() error {
	if b.status != tag.BondAccount {
		return reverts.Errorf(reverts.CodeDataTypeMismatch, "bond is %v", b.status)
	}
	return nil
}

// AddSeller records a co-signature. A seller signs once, up to threshold sellers.
func (b *Bond) AddSeller(seller ledger.Identity, threshold uint64) error {
	if err := b.checkInactive(); err != nil {
		return err
	}
	if slices.Contains(b.Sellers, seller) {
		return reverts.Errorf(reverts.CodeBondSellerLimit, "seller %v already signed", seller)
	}
	if uint64(len(b.Sellers)) >= threshold {
		return reverts.Errorf(reverts.CodeBondSellerLimit, "bond already has %d sellers", len(b.Sellers))
	}
	b.Sellers = append(b.Sellers, seller)
	return nil
}

// Activate marks the bond paid. Rewards accrue from now.
func (b *Bond) Activate(threshold uint64, now int64) error {
	if err := b.checkInactive(); err != nil {
		return err
	}
	if uint64(len(b.Sellers)) < threshold {
		return reverts.Errorf(reverts.CodeBondSellerLimit, "bond has %d of %d sellers", len(b.Sellers), threshold)
	}
	b.status = tag.BondAccount
	b.LastClaimedTime = now
	return nil
}

// CheckClaimable rejects reward claims on a bond that is not active.
func (b *Bond) CheckClaimable() error {
	return b.checkActive()
}

// MissedPeriods returns the whole unlock periods elapsed since the last unlock.
func (b *Bond) MissedPeriods(now int64) (uint64, error) {
	if now < b.UnlockStartDate {
		return 0, reverts.ErrUnlockNotStarted
	}
	return checked.Div(checked.Elapsed(now, b.LastUnlockTime), uint64(b.UnlockPeriod))
}

// CalcUnlockAmount returns the amount released by missed periods. It never
// releases more than what remains of the sale.
func (b *Bond) CalcUnlockAmount(missedPeriods uint64) (uint64, error) {
	candidate, err := checked.Mul(missedPeriods, b.UnlockAmount)
	if err != nil {
		return 0, err
	}
	total, err := checked.Add(b.TotalUnlockedAmount, candidate)
	if err != nil {
		return 0, err
	}
	if total > b.TotalAmountSold {
		return checked.Sub(b.TotalAmountSold, b.TotalUnlockedAmount)
	}
	return candidate, nil
}

// Unlock releases the periods elapsed at now and returns the released amount.
// The released amount leaves the delegated stake.
func (b *Bond) Unlock(now int64) (uint64, error) {
	if err := b.checkActive(); err != nil {
		return 0, err
	}
	missed, err := b.MissedPeriods(now)
	if err != nil {
		return 0, err
	}
	amount, err := b.CalcUnlockAmount(missed)
	if err != nil {
		return 0, err
	}
	unlocked, err := checked.Add(b.TotalUnlockedAmount, amount)
	if err != nil {
		return 0, err
	}
	staked, err := checked.Sub(b.TotalStaked, amount)
	if err != nil {
		return 0, err
	}
	advance, err := checked.Mul(missed, uint64(b.UnlockPeriod))
	if err != nil {
		return 0, err
	}
	last, err := checked.AddSeconds(b.LastUnlockTime, advance)
	if err != nil {
		return 0, err
	}

	b.TotalUnlockedAmount = unlocked
	b.TotalStaked = staked
	b.LastUnlockTime = last
	return amount, nil
}

// Close marks a fully unlocked bond deleted.
func (b *Bond) Close() error {
	if err := b.checkActive(); err != nil {
		return err
	}
	if b.TotalUnlockedAmount != b.TotalAmountSold {
		return reverts.ErrBondNotUnlocked
	}
	b.status = tag.Deleted
	return nil
}

func (b *Bond) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &body{
		Owner:                 b.Owner,
		TotalAmountSold:       b.TotalAmountSold,
		TotalStaked:           b.TotalStaked,
		TotalQuoteAmount:      b.TotalQuoteAmount,
		QuoteMint:             b.QuoteMint,
		SellerTokenAccount:    b.SellerTokenAccount,
		UnlockStartDate:       uint64(b.UnlockStartDate),
		UnlockPeriod:          uint64(b.UnlockPeriod),
		UnlockAmount:          b.UnlockAmount,
		LastUnlockTime:        uint64(b.LastUnlockTime),
		TotalUnlockedAmount:   b.TotalUnlockedAmount,
		PoolMinimumAtCreation: b.PoolMinimumAtCreation,
		StakePool:             b.StakePool,
		LastClaimedTime:       uint64(b.LastClaimedTime),
		Sellers:               b.Sellers,
	})
}

func (b *Bond) DecodeRLP(s *rlp.Stream) error {
	var d body
	if err := s.Decode(&d); err != nil {
		return err
	}
	b.Owner = d.Owner
	b.TotalAmountSold = d.TotalAmountSold
	b.TotalStaked = d.TotalStaked
	b.TotalQuoteAmount = d.TotalQuoteAmount
	b.QuoteMint = d.QuoteMint
	b.SellerTokenAccount = d.SellerTokenAccount
	b.UnlockStartDate = int64(d.UnlockStartDate)
	b.UnlockPeriod = int64(d.UnlockPeriod)
	b.UnlockAmount = d.UnlockAmount
	b.LastUnlockTime = int64(d.LastUnlockTime)
	b.TotalUnlockedAmount = d.TotalUnlockedAmount
	b.PoolMinimumAtCreation = d.PoolMinimumAtCreation
	b.StakePool = d.StakePool
	b.LastClaimedTime = int64(d.LastClaimedTime)
	b.Sellers = d.Sellers
	return nil
}

func (b *Bond) Encode() ([]byte, error) {
	return tag.Encode(b.status, b)
}

// Decode loads an inactive or active bond.
func Decode(data []byte) (*Bond, error) {
	var b Bond
	t, err := tag.Decode(data, &b, tag.InactiveBondAccount, tag.BondAccount)
	if err != nil {
		return nil, err
	}
	b.status = t
	return &b, nil
}
